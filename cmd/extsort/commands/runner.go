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
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/extsort/cmd/extsort/opts"
	"github.com/walteh/extsort/pkg/classify"
	"github.com/walteh/extsort/pkg/config"
	"github.com/walteh/extsort/pkg/log"
	"github.com/walteh/extsort/pkg/report"
	"github.com/walteh/extsort/pkg/state"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Run applies the environment overrides to cfg, takes the destination lock
// and performs one classification. The report is written even when the run
// stops early.
func Run(ctx context.Context, o *opts.RootOpts, cfg *config.Config) (*classify.Result, error) {
	config.ApplyEnv(cfg, o.LookupEnv)

	options, err := cfg.Options(o.Fs, o.Logger)
	if err != nil {
		return nil, errors.Errorf("invalid configuration: %w", err)
	}

	lock, err := acquireLock(o.LockDir, options.Destination)
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Unlock() }()

	runID := uuid.NewString()
	ctx = zerolog.Ctx(ctx).With().Str("run_id", runID).Logger().WithContext(ctx)

	o.Logger.StartRun(ctx, log.RunOperation{
		ID:          runID,
		Origin:      options.Origin,
		Destination: options.Destination,
		Mode:        options.Mode,
	})
	started := time.Now()
	res, err := classify.Classify(ctx, options)
	o.Logger.EndRun(ctx)

	if cfg.State != "" {
		if serr := recordRun(ctx, o, cfg.State, runID, started, res); serr != nil {
			o.Logger.Warningf("run history not updated: %v", serr)
		}
	}

	if werr := report.Write(o.Stdout, res); werr != nil {
		return res, errors.Errorf("writing report: %w", werr)
	}
	if err != nil {
		return res, errors.Errorf("classifying %s: %w", options.Origin, err)
	}

	if failed := len(res.Failed()); failed > 0 {
		o.Logger.Warningf("%d of %d files could not be %s", failed, len(res.Scanned), options.Mode.Verb())
	} else {
		o.Logger.Successf("%d files %s into %s", len(res.Transferred), options.Mode.Verb(), options.Destination)
	}
	return res, nil
}

// recordRun appends the run to the history file at path
func recordRun(ctx context.Context, o *opts.RootOpts, path, runID string, started time.Time, res *classify.Result) error {
	st := state.New(o.Fs, path)
	if err := st.Load(ctx); err != nil {
		return errors.Errorf("loading history: %w", err)
	}
	st.Record(ctx, runID, started, time.Now(), res)
	if err := st.Save(ctx); err != nil {
		return errors.Errorf("saving history: %w", err)
	}
	return nil
}
