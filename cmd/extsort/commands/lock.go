// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"

	"github.com/gofrs/flock"
	"gitlab.com/tozd/go/errors"
)

// ErrDestinationBusy is returned when another process is classifying into
// the same destination
var ErrDestinationBusy = errors.Base("destination is already being classified")

// lockPath returns <dir>/extsort-<sha256(destination)>.lock
func lockPath(dir, destination string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(destination)))
	return filepath.Join(dir, "extsort-"+hex.EncodeToString(sum[:8])+".lock")
}

// 🔒 acquireLock takes the per-destination run lock without blocking
func acquireLock(dir, destination string) (*flock.Flock, error) {
	lock := flock.New(lockPath(dir, destination))

	ok, err := lock.TryLock()
	if err != nil {
		return nil, errors.Errorf("acquiring lock %s: %w", lock.Path(), err)
	}
	if !ok {
		return nil, errors.Errorf("%s: %w", destination, ErrDestinationBusy)
	}
	return lock, nil
}
