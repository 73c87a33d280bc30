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

package classify

import (
	"path/filepath"
	"regexp"
	"strings"
)

var keyPattern = regexp.MustCompile(`[0-9a-zA-Z]+$`)

// 🔑 Key returns the bucket key for a file name, or false when the name
// does not end in a letter or digit.
func Key(name string) (string, bool) {
	k := keyPattern.FindString(filepath.Base(name))
	if k == "" {
		return "", false
	}
	return strings.ToLower(k), true
}

// 🔍 isCandidate reports whether a directory entry name takes part in discovery
func isCandidate(name string) bool {
	return !strings.HasPrefix(name, ".") && strings.Contains(name, ".")
}
