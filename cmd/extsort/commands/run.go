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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/extsort/cmd/extsort/opts"
	"github.com/walteh/extsort/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &config.Config{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Classify a directory once",
		Long: `Run files every regular file of the origin directory into
<destination>/<extension> and prints a summary.

Values are resolved in this order, later ones winning:
1. OS defaults
2. the config file
3. flags
4. ORIGIN_DIRECTORY and DESTINY_DIRECTORY`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "run").Logger().WithContext(cmd.Context())

			cfg := *opts.Config
			cfg.Merge(flags)

			if _, err := Run(ctx, opts, &cfg); err != nil {
				return errors.Errorf("running classifier: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.Origin, "origin", "o", "", "directory to classify")
	cmd.Flags().StringVarP(&flags.Destination, "destination", "t", "", "root of the extension buckets")
	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", "", "transfer mode: copy or move")
	cmd.Flags().StringVar(&flags.Conflict, "conflict", "", "existing target policy: overwrite, skip or fail")
	cmd.Flags().StringSliceVar(&flags.Ignore, "ignore", nil, "base name patterns to leave in place")
	cmd.Flags().StringVar(&flags.State, "state", "", "run history file to append to")

	return cmd
}
