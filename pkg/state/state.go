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

// Package state keeps a history of classification runs in a JSON file.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/extsort/pkg/classify"
	"gitlab.com/tozd/go/errors"
)

const (
	SchemaVersion = "1.0.0"

	// MaxRuns is how many runs the history keeps, newest last
	MaxRuns = 50
)

// 📦 File is the on-disk layout of the history
type File struct {
	SchemaVersion string    `json:"schema_version"`
	LastUpdated   time.Time `json:"last_updated"`
	Runs          []Run     `json:"runs"`
}

// Run records one classification run
type Run struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Mode        string    `json:"mode"`
	Scanned     int       `json:"scanned"`
	Transferred int       `json:"transferred"`
	Failed      int       `json:"failed"`
	Files       []FileRun `json:"files,omitempty"`
}

// FileRun records what happened to one scanned file
type FileRun struct {
	Path   string `json:"path"`
	Target string `json:"target,omitempty"`
	Status string `json:"status"`
	Bytes  int64  `json:"bytes,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Summary returns "transferred/scanned"
func (r Run) Summary() string {
	return fmt.Sprintf("%d/%d", r.Transferred, r.Scanned)
}

// 🗂️ State is a history file bound to a path
type State struct {
	fs   afero.Fs
	path string
	file File
}

// 🏭 New creates a state for path. Nothing is read until Load.
func New(fsys afero.Fs, path string) *State {
	return &State{
		fs:   fsys,
		path: filepath.Clean(path),
		file: File{SchemaVersion: SchemaVersion},
	}
}

// Path returns the history file location
func (s *State) Path() string {
	return s.path
}

// Runs returns the recorded runs, oldest first
func (s *State) Runs() []Run {
	return s.file.Runs
}

// 📥 Load reads the history. A missing file leaves the state empty.
func (s *State) Load(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", s.path).Msg("loading state")

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Msg("no state file, starting clean")
			s.file = File{SchemaVersion: SchemaVersion}
			return nil
		}
		return errors.Errorf("reading state file: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return errors.Errorf("parsing state file %s: %w", s.path, err)
	}
	if file.SchemaVersion != SchemaVersion {
		return errors.Errorf("state file %s has schema %q, want %q", s.path, file.SchemaVersion, SchemaVersion)
	}

	s.file = file
	return nil
}

// 💾 Save writes the history atomically through a temp file and rename
func (s *State) Save(ctx context.Context) error {
	zerolog.Ctx(ctx).Debug().Str("path", s.path).Int("runs", len(s.file.Runs)).Msg("saving state")

	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return errors.Errorf("encoding state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return errors.Errorf("creating state directory: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := s.fs.Chmod(tmpName, 0o644); err != nil {
		s.fs.Remove(tmpName)
		return errors.Errorf("setting permissions: %w", err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		s.fs.Remove(tmpName)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// 📝 Record appends a run built from res and drops the oldest runs beyond MaxRuns
func (s *State) Record(ctx context.Context, id string, started, finished time.Time, res *classify.Result) Run {
	run := Run{
		ID:          id,
		StartedAt:   started.UTC(),
		FinishedAt:  finished.UTC(),
		Origin:      res.Origin,
		Destination: res.Destination,
		Mode:        res.Mode.String(),
		Scanned:     len(res.Scanned),
		Transferred: len(res.Transferred),
		Failed:      len(res.Failed()),
		Files:       make([]FileRun, 0, len(res.Outcomes)),
	}

	for _, out := range res.Outcomes {
		f := FileRun{
			Path:   out.Path,
			Target: out.Target,
			Status: out.Status.String(),
			Bytes:  out.Bytes,
		}
		if out.Err != nil {
			f.Kind = out.Err.Kind.String()
			f.Error = out.Err.Err.Error()
		}
		run.Files = append(run.Files, f)
	}

	s.file.Runs = append(s.file.Runs, run)
	if over := len(s.file.Runs) - MaxRuns; over > 0 {
		s.file.Runs = append([]Run(nil), s.file.Runs[over:]...)
	}
	s.file.LastUpdated = run.FinishedAt

	zerolog.Ctx(ctx).Debug().Str("run_id", id).Str("summary", run.Summary()).Msg("recorded run")
	return run
}
