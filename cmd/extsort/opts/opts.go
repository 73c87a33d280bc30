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

package opts

import (
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/walteh/extsort/pkg/config"
	"github.com/walteh/extsort/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Config holds defaults merged with the config file, before flags,
	// prompts and the environment are applied
	Config *config.Config
	Logger *log.Logger

	Fs        afero.Fs
	Stdin     io.Reader
	Stdout    io.Writer
	LookupEnv func(string) (string, bool)
	// LockDir holds the per-destination run locks
	LockDir string
}

// Default returns options wired to the real process environment
func Default() *RootOpts {
	return &RootOpts{
		Config:    config.Defaults(),
		Fs:        afero.NewOsFs(),
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		LookupEnv: os.LookupEnv,
		LockDir:   os.TempDir(),
	}
}
