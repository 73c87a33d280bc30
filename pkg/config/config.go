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
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/extsort/pkg/classify"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents one classification run. Mode and Conflict are kept
// as strings until Validate so every format accepts the same spellings.
type Config struct {
	Origin      string   `json:"origin,omitempty" yaml:"origin,omitempty" toml:"origin,omitempty"`
	Destination string   `json:"destination,omitempty" yaml:"destination,omitempty" toml:"destination,omitempty"`
	Mode        string   `json:"mode,omitempty" yaml:"mode,omitempty" toml:"mode,omitempty"`
	Conflict    string   `json:"conflict,omitempty" yaml:"conflict,omitempty" toml:"conflict,omitempty"`
	Ignore      []string `json:"ignore,omitempty" yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// State is the run history file. Empty disables it.
	State string `json:"state,omitempty" yaml:"state,omitempty" toml:"state,omitempty"`

	mode     classify.Mode
	conflict classify.ConflictPolicy
}

// 🎯 Load loads the configuration from a file. The result is not validated,
// since flags and environment variables are usually merged on top first.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔀 Merge overlays the non-empty fields of other onto cfg
func (cfg *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Origin != "" {
		cfg.Origin = other.Origin
	}
	if other.Destination != "" {
		cfg.Destination = other.Destination
	}
	if other.Mode != "" {
		cfg.Mode = other.Mode
	}
	if other.Conflict != "" {
		cfg.Conflict = other.Conflict
	}
	if len(other.Ignore) > 0 {
		cfg.Ignore = append([]string(nil), other.Ignore...)
	}
	if other.State != "" {
		cfg.State = other.State
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Origin == "" {
		return errors.Errorf("origin is required")
	}
	if cfg.Destination == "" {
		return errors.Errorf("destination is required")
	}

	cfg.Origin = filepath.Clean(cfg.Origin)
	cfg.Destination = filepath.Clean(cfg.Destination)

	mode, err := classify.ParseMode(cfg.Mode)
	if err != nil {
		return errors.Errorf("mode: %w", err)
	}
	conflict, err := classify.ParseConflict(cfg.Conflict)
	if err != nil {
		return errors.Errorf("conflict: %w", err)
	}

	cfg.mode = mode
	cfg.conflict = conflict
	cfg.Mode = mode.String()
	cfg.Conflict = conflict.String()
	return nil
}

// 🏗️ Options validates the config and turns it into classifier options
func (cfg *Config) Options(fsys afero.Fs, observer classify.Observer) (classify.Options, error) {
	if err := cfg.Validate(); err != nil {
		return classify.Options{}, err
	}
	return classify.Options{
		Origin:      cfg.Origin,
		Destination: cfg.Destination,
		Mode:        cfg.mode,
		Conflict:    cfg.conflict,
		Ignore:      cfg.Ignore,
		Fs:          fsys,
		Observer:    observer,
	}, nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	mode := cfg.Mode
	if mode == "" {
		mode = "copy"
	}
	return fmt.Sprintf("%s -(%s)-> %s", cfg.Origin, mode, cfg.Destination)
}
