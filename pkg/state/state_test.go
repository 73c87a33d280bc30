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

package state

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/extsort/pkg/classify"
)

func setupTestLogger(t *testing.T) context.Context {
	// Create a logger that writes to the test log
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func sampleResult() *classify.Result {
	return &classify.Result{
		Origin:      "/in",
		Destination: "/out",
		Mode:        classify.ModeMove,
		Scanned:     []string{"/in/a.txt", "/in/gone.png", "/in/notes."},
		Transferred: []string{"/in/a.txt"},
		Outcomes: []classify.Outcome{
			{Path: "/in/a.txt", Key: "txt", Target: "/out/txt/a.txt", Bytes: 5, Status: classify.StatusTransferred},
			{
				Path:   "/in/gone.png",
				Key:    "png",
				Status: classify.StatusFailed,
				Err:    &classify.FileError{Kind: classify.KindNotFound, Path: "/in/gone.png", Err: fs.ErrNotExist},
			},
			{Path: "/in/notes.", Status: classify.StatusSkippedNoKey},
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("creates_new_state", func(t *testing.T) {
		state := New(afero.NewMemMapFs(), "/var/extsort/../extsort/history.json")
		assert.Equal(t, "/var/extsort/history.json", state.Path())
		assert.Equal(t, SchemaVersion, state.file.SchemaVersion)
		assert.Empty(t, state.Runs())
	})
}

func TestLoadAndSave(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("load_nonexistent_creates_clean", func(t *testing.T) {
		state := New(afero.NewMemMapFs(), "/history.json")
		require.NoError(t, state.Load(ctx), "loading nonexistent state")
		assert.Empty(t, state.Runs())
	})

	t.Run("save_and_load", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		state := New(fsys, "/data/history.json")

		started := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		run := state.Record(ctx, "run-1", started, started.Add(time.Second), sampleResult())
		assert.Equal(t, "1/3", run.Summary())
		assert.Equal(t, 1, run.Failed)

		require.NoError(t, state.Save(ctx), "saving state")

		entries, err := afero.ReadDir(fsys, "/data")
		require.NoError(t, err)
		require.Len(t, entries, 1, "no temp file is left behind")

		state2 := New(fsys, "/data/history.json")
		require.NoError(t, state2.Load(ctx), "loading saved state")

		require.Len(t, state2.Runs(), 1)
		got := state2.Runs()[0]
		assert.Equal(t, "run-1", got.ID)
		assert.Equal(t, "move", got.Mode)
		assert.True(t, started.Equal(got.StartedAt))
		require.Len(t, got.Files, 3)
		assert.Equal(t, FileRun{Path: "/in/a.txt", Target: "/out/txt/a.txt", Status: "transferred", Bytes: 5}, got.Files[0])
		assert.Equal(t, "not_found", got.Files[1].Kind)
		assert.Equal(t, "file does not exist", got.Files[1].Error)
		assert.Equal(t, "no_key", got.Files[2].Status)
	})

	t.Run("save_on_disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "history.json")
		state := New(afero.NewOsFs(), path)
		state.Record(ctx, "run-1", time.Now(), time.Now(), sampleResult())
		require.NoError(t, state.Save(ctx))

		data, err := afero.ReadFile(afero.NewOsFs(), path)
		require.NoError(t, err)

		var file File
		require.NoError(t, json.Unmarshal(data, &file))
		assert.Equal(t, SchemaVersion, file.SchemaVersion)
		assert.Len(t, file.Runs, 1)
	})

	t.Run("corrupt_file", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/history.json", []byte("{not json"), 0o644))

		err := New(fsys, "/history.json").Load(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing state file")
	})

	t.Run("unknown_schema", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/history.json", []byte(`{"schema_version":"9.9.9"}`), 0o644))

		err := New(fsys, "/history.json").Load(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `schema "9.9.9"`)
	})
}

func TestRecordKeepsNewestRuns(t *testing.T) {
	ctx := setupTestLogger(t)
	state := New(afero.NewMemMapFs(), "/history.json")

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < MaxRuns+5; i++ {
		at := start.Add(time.Duration(i) * time.Minute)
		state.Record(ctx, fmt.Sprintf("run-%d", i), at, at, &classify.Result{})
	}

	runs := state.Runs()
	require.Len(t, runs, MaxRuns)
	assert.Equal(t, "run-5", runs[0].ID, "oldest runs are dropped")
	assert.Equal(t, fmt.Sprintf("run-%d", MaxRuns+4), runs[len(runs)-1].ID)
	assert.True(t, state.file.LastUpdated.Equal(runs[len(runs)-1].FinishedAt))
}
