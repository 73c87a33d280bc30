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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantKey string
		wantOK  bool
	}{
		{name: "lowercases", file: "report.PDF", wantKey: "pdf", wantOK: true},
		{name: "last_segment_only", file: "archive.tar.gz", wantKey: "gz", wantOK: true},
		{name: "with_directory", file: "/tmp/in/photo.JpG", wantKey: "jpg", wantOK: true},
		{name: "digits", file: "track.mp3", wantKey: "mp3", wantOK: true},
		{name: "trailing_dot", file: "notes.", wantOK: false},
		{name: "trailing_symbol", file: "weird.txt~", wantOK: false},
		{name: "non_ascii_tail", file: "café.é", wantOK: false},
		{name: "dash_stops_run", file: "backup.v1-2", wantKey: "2", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := Key(tt.file)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestIsCandidate(t *testing.T) {
	assert.True(t, isCandidate("a.txt"))
	assert.True(t, isCandidate("notes."))
	assert.False(t, isCandidate("noext"))
	assert.False(t, isCandidate(".bashrc"))
	assert.False(t, isCandidate(".env.local"))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeCopy},
		{in: "1", want: ModeCopy},
		{in: "copy", want: ModeCopy},
		{in: " Move ", want: ModeMove},
		{in: "2", want: ModeMove},
		{in: "3", wantErr: true},
		{in: "rmtree", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("mode_"+tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.IsType(t, copier{}, ModeCopy.Transferer())
	assert.IsType(t, mover{}, ModeMove.Transferer())
	assert.Equal(t, "moved", ModeMove.Verb())
}

func TestParseConflict(t *testing.T) {
	for in, want := range map[string]ConflictPolicy{
		"":          ConflictOverwrite,
		"overwrite": ConflictOverwrite,
		"SKIP":      ConflictSkip,
		"fail":      ConflictFail,
	} {
		got, err := ParseConflict(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
		assert.NotEmpty(t, got.String())
	}

	_, err := ParseConflict("rename")
	require.ErrorIs(t, err, ErrInvalidConflict)
}
