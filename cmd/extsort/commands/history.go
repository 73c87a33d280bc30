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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/extsort/cmd/extsort/opts"
	"github.com/walteh/extsort/pkg/report"
	"github.com/walteh/extsort/pkg/state"
	"gitlab.com/tozd/go/errors"
)

// NewHistoryCmd creates a new history command
func NewHistoryCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		path  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent classification runs",
		Long: `History prints the runs recorded in the state file, newest first.
Runs are only recorded when a state file is configured with --state or
the "state" config key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if path == "" {
				path = opts.Config.State
			}
			if path == "" {
				return errors.Errorf("no state file configured")
			}

			st := state.New(opts.Fs, path)
			if err := st.Load(ctx); err != nil {
				return errors.Errorf("loading history: %w", err)
			}

			runs := st.Runs()
			if len(runs) == 0 {
				opts.Logger.Infof("No runs recorded in %s", st.Path())
				return nil
			}
			if limit > 0 && len(runs) > limit {
				runs = runs[len(runs)-limit:]
			}

			_, err := fmt.Fprintln(opts.Stdout, report.History(runs))
			return err
		},
	}

	cmd.Flags().StringVar(&path, "state", "", "state file to read (defaults to the configured one)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show, 0 for all")

	return cmd
}
