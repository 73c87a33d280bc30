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

package main

import (
	"io"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/extsort/cmd/extsort/commands"
	"github.com/walteh/extsort/cmd/extsort/opts"
	"github.com/walteh/extsort/pkg/config"
	extlog "github.com/walteh/extsort/pkg/log"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debugMode  bool
)

// newRootCmd builds the command tree around shared options
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	interactiveCmd := commands.NewInteractiveCmd(o)

	rootCmd := &cobra.Command{
		Use:   "extsort",
		Short: "Sort the files of a directory into folders named after their extension",
		Long: `extsort scans a directory and copies or moves every file into
<destination>/<extension>, for example report.PDF into <destination>/pdf.

Without a subcommand it starts the interactive prompt when attached to a
terminal and prints this help otherwise.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return prepareRootOpts(cmd, o)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(o.Stdin) {
				return cmd.Help()
			}
			return interactiveCmd.RunE(cmd, args)
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewRunCmd(o),
		interactiveCmd,
		commands.NewHistoryCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (.yaml, .json, .toml or .hcl)")
	cmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "enable debug logging")
}

// prepareRootOpts applies the flags to the shared options once cobra has
// parsed them
func prepareRootOpts(cmd *cobra.Command, o *opts.RootOpts) error {
	setupLogging()

	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	if o.Logger == nil {
		o.Logger = extlog.New(o.Stdout, *logger)
	}

	if configFile == "" {
		return nil
	}

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	o.Config.Merge(cfg)

	logger.Debug().Str("config", o.Config.String()).Msg("configuration loaded")
	return nil
}

// setupLogging sets the global level from the flags. The logger itself is
// put into the context by main.
func setupLogging() {
	if debugMode {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
