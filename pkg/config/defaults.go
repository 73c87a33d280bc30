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

package config

import (
	"os"
	"path"
	"runtime"
)

const (
	// EnvOrigin overrides the origin directory, whatever else supplied it
	EnvOrigin = "ORIGIN_DIRECTORY"
	// EnvDestination overrides the destination root
	EnvDestination = "DESTINY_DIRECTORY"

	defaultBucketRoot = "classifier"
)

// 🏠 DefaultRoot returns the folder offered as origin on the given OS:
// the Downloads folder on Windows, $HOME on Linux, nothing elsewhere.
func DefaultRoot(goos string, getenv func(string) string) string {
	switch goos {
	case "windows":
		return "C:" + getenv("HOMEPATH") + "/Downloads"
	case "linux":
		return getenv("HOME")
	default:
		return ""
	}
}

// DefaultDestination is <root>/classifier, or a relative "classifier" when
// the OS has no default root.
func DefaultDestination(root string) string {
	if root == "" {
		return defaultBucketRoot
	}
	return path.Join(root, defaultBucketRoot)
}

// 🎛️ Defaults returns the config used before any file, flag or prompt applies
func Defaults() *Config {
	root := DefaultRoot(runtime.GOOS, os.Getenv)
	return &Config{
		Origin:      root,
		Destination: DefaultDestination(root),
		Mode:        "copy",
		Conflict:    "overwrite",
	}
}

// 🌱 ApplyEnv lets ORIGIN_DIRECTORY and DESTINY_DIRECTORY win over every
// other source
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvOrigin); ok && v != "" {
		cfg.Origin = v
	}
	if v, ok := lookup(EnvDestination); ok && v != "" {
		cfg.Destination = v
	}
}
