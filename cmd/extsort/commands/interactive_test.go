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
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/extsort/cmd/extsort/opts"
	"github.com/walteh/extsort/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// scriptedPrompter answers prompts from a fixed script and reports exit once
// the script runs out, like Ctrl-D at a terminal
type scriptedPrompter struct {
	answers []string
	prompts []string
	err     error
}

func (p *scriptedPrompter) Prompt(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.answers) == 0 {
		if p.err != nil {
			return "", p.err
		}
		return "", errExit
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Close() error { return nil }

func TestInteractive(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		setup       func(t *testing.T, o *opts.RootOpts)
		answers     []string
		promptErr   error
		wantErr     bool
		wantPrompts int
		wantFiles   []string
		wantMissing []string
		wantOutput  []string
	}{
		{
			name:        "defaults_then_decline",
			answers:     []string{"", "", "", "2"},
			wantPrompts: 4,
			wantFiles:   []string{"/origin/classifier/txt/a.txt", "/origin/a.txt"},
			wantOutput: []string{
				"extsort • file classifier",
				"Path to manage files /origin",
				"Path to destination folder /origin/classifier",
				"Files copied: 1/1",
				"Exiting program",
			},
		},
		{
			name:        "move_mode",
			answers:     []string{"", "/sorted", "2", "2"},
			wantPrompts: 4,
			wantFiles:   []string{"/sorted/txt/a.txt"},
			wantMissing: []string{"/origin/a.txt"},
			wantOutput:  []string{"Files moved: 1/1"},
		},
		{
			name: "repeat_with_second_origin",
			setup: func(t *testing.T, o *opts.RootOpts) {
				writeFiles(t, o.Fs, map[string]string{"/second/notes.md": "# notes"})
			},
			answers:     []string{"", "", "1", "1", "/second", "/second/out", "2", "2"},
			wantPrompts: 8,
			wantFiles:   []string{"/origin/classifier/txt/a.txt", "/second/out/md/notes.md"},
			wantMissing: []string{"/second/notes.md"},
			wantOutput:  []string{"Files copied: 1/1", "Files moved: 1/1"},
		},
		{
			name:        "unknown_mode_falls_back_to_copy",
			answers:     []string{"", "", "sideways", "no"},
			wantPrompts: 4,
			wantFiles:   []string{"/origin/classifier/txt/a.txt", "/origin/a.txt"},
			wantOutput:  []string{`Unknown mode "sideways", using copy`, "Files copied: 1/1"},
		},
		{
			name:        "environment_overrides_answers",
			env:         map[string]string{config.EnvOrigin: "/origin", config.EnvDestination: "/from-env"},
			answers:     []string{"/ignored", "/also-ignored", "1", "2"},
			wantPrompts: 4,
			wantFiles:   []string{"/from-env/txt/a.txt"},
			wantMissing: []string{"/also-ignored"},
			wantOutput:  []string{"Path to manage files /ignored"},
		},
		{
			name: "failed_run_asks_again",
			setup: func(t *testing.T, o *opts.RootOpts) {
				writeFiles(t, o.Fs, map[string]string{"/blocked": "file in the way"})
			},
			answers:     []string{"", "/blocked", "1", "1", "", "", "1", "2"},
			wantPrompts: 8,
			wantFiles:   []string{"/origin/classifier/txt/a.txt"},
			wantOutput:  []string{"creating destination /blocked", "Files copied: 1/1"},
		},
		{
			name:        "exit_at_first_prompt",
			wantPrompts: 1,
			wantMissing: []string{"/origin/classifier"},
			wantOutput:  []string{"Exiting program"},
		},
		{
			name:        "exit_at_repeat_prompt",
			answers:     []string{"", "", "1"},
			wantPrompts: 4,
			wantFiles:   []string{"/origin/classifier/txt/a.txt"},
			wantOutput:  []string{"Exiting program"},
		},
		{
			name:        "prompt_failure",
			answers:     []string{""},
			promptErr:   errors.New("terminal gone"),
			wantErr:     true,
			wantPrompts: 2,
			wantMissing: []string{"/origin/classifier"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, out := newTestOpts(t, tt.env)
			writeFiles(t, o.Fs, map[string]string{"/origin/a.txt": "alpha"})
			if tt.setup != nil {
				tt.setup(t, o)
			}

			p := &scriptedPrompter{answers: tt.answers, err: tt.promptErr}
			err := Interactive(testContext(t), o, p)
			if tt.wantErr {
				require.Error(t, err)
				assert.NotContains(t, out.String(), "Exiting program")
			} else {
				require.NoError(t, err)
			}

			assert.Len(t, p.prompts, tt.wantPrompts, "prompts asked")
			for _, path := range tt.wantFiles {
				exists, err := afero.Exists(o.Fs, path)
				require.NoError(t, err)
				assert.True(t, exists, "%s should exist", path)
			}
			for _, path := range tt.wantMissing {
				exists, err := afero.Exists(o.Fs, path)
				require.NoError(t, err)
				assert.False(t, exists, "%s should not exist", path)
			}
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestInteractivePrompts(t *testing.T) {
	o, out := newTestOpts(t, nil)

	p := &scriptedPrompter{answers: []string{"", ""}}
	require.NoError(t, Interactive(testContext(t), o, p))

	require.Len(t, p.prompts, 3)
	assert.Equal(t, "Introduce origin path to start file classification, default /origin: ", p.prompts[0])
	assert.Equal(t, "Add destination path to store files by file extension, default /origin/classifier: ", p.prompts[1])
	assert.Equal(t, "> ", p.prompts[2])

	menu := out.String()
	assert.True(t, strings.Contains(menu, "Select which mode to use:\n1) Copy\n2) Move\n"), "mode menu is printed")
	assert.NotContains(t, menu, "Start new classifier process", "no repeat question without a run")
}
