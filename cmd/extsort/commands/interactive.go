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
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/extsort/cmd/extsort/opts"
	"github.com/walteh/extsort/pkg/classify"
	"github.com/walteh/extsort/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// errExit ends the session without an error
var errExit = errors.Base("exit requested")

// 💬 Prompter reads one answer per call
type Prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// linerPrompter reads answers with line editing and history
type linerPrompter struct {
	state *liner.State
}

func newLinerPrompter() *linerPrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &linerPrompter{state: state}
}

func (p *linerPrompter) Prompt(prompt string) (string, error) {
	line, err := p.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", errExit
		}
		return "", errors.Errorf("reading answer: %w", err)
	}
	if strings.TrimSpace(line) != "" {
		p.state.AppendHistory(line)
	}
	return line, nil
}

func (p *linerPrompter) Close() error {
	return p.state.Close()
}

// NewInteractiveCmd creates a new interactive command
func NewInteractiveCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Classify directories chosen at a prompt",
		Long: `Interactive asks for the origin, the destination and the transfer mode,
runs the classifier and offers to start again.

ORIGIN_DIRECTORY and DESTINY_DIRECTORY override the answers.
Ctrl-C or Ctrl-D at any prompt exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "interactive").Logger().WithContext(cmd.Context())

			p := newLinerPrompter()
			defer p.Close()

			return Interactive(ctx, opts, p)
		},
	}

	return cmd
}

// 🔁 Interactive runs the prompt loop until the user declines another run.
// A failed run is reported and the loop continues.
func Interactive(ctx context.Context, o *opts.RootOpts, p Prompter) error {
	o.Logger.Header("file classifier")

	for {
		cfg, err := ask(ctx, o, p)
		if err != nil {
			return exit(o, err)
		}

		if _, err := Run(ctx, o, cfg); err != nil {
			o.Logger.Errorf("%v", err)
		}

		fmt.Fprintln(o.Stdout, "Start new classifier process:\n1) Yes\n2) No")
		again, err := p.Prompt("> ")
		if err != nil {
			return exit(o, err)
		}
		if strings.TrimSpace(again) != "1" {
			return exit(o, errExit)
		}
		o.Logger.LogNewline()
	}
}

func exit(o *opts.RootOpts, err error) error {
	if errors.Is(err, errExit) {
		o.Logger.Info("Exiting program")
		return nil
	}
	return err
}

// ask collects one run's settings. Empty answers take the defaults.
func ask(ctx context.Context, o *opts.RootOpts, p Prompter) (*config.Config, error) {
	cfg := *o.Config

	origin, err := p.Prompt(fmt.Sprintf("Introduce origin path to start file classification, default %s: ", o.Config.Origin))
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(origin); v != "" {
		cfg.Origin = v
	}
	o.Logger.Infof("Path to manage files %s", cfg.Origin)

	destination, err := p.Prompt(fmt.Sprintf("Add destination path to store files by file extension, default %s: ", cfg.Destination))
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(destination); v != "" {
		cfg.Destination = v
	}
	o.Logger.Infof("Path to destination folder %s", cfg.Destination)

	fmt.Fprintln(o.Stdout, "Select which mode to use:\n1) Copy\n2) Move")
	answer, err := p.Prompt("> ")
	if err != nil {
		return nil, err
	}
	mode, err := classify.ParseMode(strings.TrimSpace(answer))
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("falling back to copy")
		o.Logger.Warningf("Unknown mode %q, using copy", strings.TrimSpace(answer))
		mode = classify.ModeCopy
	}
	cfg.Mode = mode.String()

	return &cfg, nil
}
