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
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures a single run
type Options struct {
	Origin      string
	Destination string
	Mode        Mode
	Conflict    ConflictPolicy

	// Ignore holds doublestar patterns matched against base names. Matching
	// files stay scanned but are never transferred.
	Ignore []string

	// Fs defaults to the OS filesystem
	Fs afero.Fs
	// Observer defaults to NopObserver
	Observer Observer
}

type run struct {
	opts     Options
	fs       afero.Fs
	observer Observer
	transfer Transferer
	buckets  map[string]bool
}

// 🏃 Classify scans opts.Origin and files every entry into
// <opts.Destination>/<key>. Per-file failures are recorded in the result and
// never returned. The returned error is either a *DirectoryCreateError or the
// context error, and the partial result is returned alongside it.
func Classify(ctx context.Context, opts Options) (*Result, error) {
	r := &run{
		opts:     opts,
		fs:       opts.Fs,
		observer: opts.Observer,
		transfer: opts.Mode.Transferer(),
		buckets:  map[string]bool{},
	}
	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if r.observer == nil {
		r.observer = NopObserver{}
	}

	logger := zerolog.Ctx(ctx).With().
		Str("origin", opts.Origin).
		Str("destination", opts.Destination).
		Str("mode", opts.Mode.String()).
		Logger()
	ctx = logger.WithContext(ctx)

	res := &Result{
		Origin:      opts.Origin,
		Destination: opts.Destination,
		Mode:        opts.Mode,
		Scanned:     r.discover(ctx),
	}
	res.Transferred = make([]string, 0, len(res.Scanned))
	res.Outcomes = make([]Outcome, 0, len(res.Scanned))

	if err := r.ensureRoot(); err != nil {
		return res, err
	}

	for _, path := range res.Scanned {
		if err := ctx.Err(); err != nil {
			logger.Warn().Int("remaining", len(res.Scanned)-len(res.Outcomes)).Msg("run cancelled")
			r.summarize(ctx, res)
			return res, errors.Errorf("classifying %s: %w", opts.Origin, err)
		}

		out := r.classifyFile(ctx, path)
		res.Outcomes = append(res.Outcomes, out)
		if out.OK() {
			res.Transferred = append(res.Transferred, path)
		}
		r.report(ctx, out)
	}

	r.summarize(ctx, res)
	return res, nil
}

// 🔍 discover lists the direct children of the origin that look like files
// with an extension. A missing or unreadable origin yields nothing.
func (r *run) discover(ctx context.Context) []string {
	logger := zerolog.Ctx(ctx)

	dir, err := r.fs.Open(r.opts.Origin)
	if err != nil {
		logger.Debug().Err(err).Msg("origin not readable, nothing to scan")
		return nil
	}
	defer dir.Close()

	entries, err := dir.Readdir(-1)
	if err != nil {
		logger.Debug().Err(err).Msg("origin is not a directory, nothing to scan")
		return nil
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !isCandidate(entry.Name()) {
			continue
		}
		path := filepath.Join(r.opts.Origin, entry.Name())
		if !r.isRegular(path, entry) {
			continue
		}
		files = append(files, path)
	}

	logger.Debug().Int("files", len(files)).Msg("scanned origin")
	return files
}

func (r *run) isRegular(path string, entry os.FileInfo) bool {
	if entry.Mode().IsRegular() {
		return true
	}
	if entry.Mode()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := r.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// 📁 ensureRoot creates the destination root, one level only
func (r *run) ensureRoot() error {
	dest := r.opts.Destination

	info, err := r.fs.Stat(dest)
	switch {
	case err == nil:
		if !info.IsDir() {
			return &DirectoryCreateError{Path: dest, Err: ErrNotDirectory}
		}
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return &DirectoryCreateError{Path: dest, Err: err}
	}

	if err := r.fs.Mkdir(dest, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return &DirectoryCreateError{Path: dest, Err: err}
	}
	return nil
}

// 🪣 ensureBucket creates <destination>/<key> at most once per run. A bucket
// created concurrently by someone else counts as created.
func (r *run) ensureBucket(key, bucket string) error {
	if r.buckets[key] {
		return nil
	}

	info, err := r.fs.Stat(bucket)
	switch {
	case err == nil:
		if !info.IsDir() {
			return errors.Errorf("bucket %s: %w", bucket, ErrNotDirectory)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := r.fs.Mkdir(bucket, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
			return errors.Errorf("creating bucket: %w", err)
		}
	default:
		return errors.Errorf("checking bucket: %w", err)
	}

	r.buckets[key] = true
	return nil
}

func (r *run) bucketGone(bucket string) bool {
	_, err := r.fs.Stat(bucket)
	return errors.Is(err, fs.ErrNotExist)
}

// 📄 classifyFile runs key derivation, bucket provisioning and transfer for
// one file. It never panics and never returns an error.
func (r *run) classifyFile(ctx context.Context, path string) (out Outcome) {
	out = Outcome{Path: path}

	defer func() {
		if p := recover(); p != nil {
			out.Status = StatusFailed
			out.Err = &FileError{Kind: KindUnknown, Path: path, Err: errors.Errorf("panic: %v", p)}
		}
	}()

	name := filepath.Base(path)
	if r.ignored(ctx, name) {
		out.Status = StatusIgnored
		return out
	}

	key, ok := Key(name)
	if !ok {
		out.Status = StatusSkippedNoKey
		return out
	}
	out.Key = key
	out.Bucket = filepath.Join(r.opts.Destination, key)

	if err := r.ensureBucket(key, out.Bucket); err != nil {
		out.Status = StatusFailed
		out.Err = &FileError{Kind: KindDirectoryAccess, Path: path, Err: err}
		return out
	}

	tr, err := r.transfer.Transfer(ctx, r.fs, path, out.Bucket, r.opts.Conflict)
	if err != nil {
		out.Status = StatusFailed
		out.Err = newTransferError(path, err)
		if out.Err.Kind == KindNotFound && r.bucketGone(out.Bucket) {
			// removed behind our back after it was cached
			delete(r.buckets, key)
			out.Err.Kind = KindDirectoryAccess
		}
		return out
	}

	out.Target = tr.Target
	out.Bytes = tr.Bytes
	if tr.Skipped {
		out.Status = StatusSkippedConflict
		return out
	}
	out.Status = StatusTransferred
	return out
}

func (r *run) ignored(ctx context.Context, name string) bool {
	for _, pattern := range r.opts.Ignore {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("file", name).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("file", name).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

// 📣 report forwards a per-file outcome to the observer
func (r *run) report(ctx context.Context, out Outcome) {
	ev := Event{Mode: r.opts.Mode, Outcome: &out}

	switch out.Status {
	case StatusTransferred:
		ev.Level = zerolog.InfoLevel
		ev.Message = fmt.Sprintf("File %s %s to %s", out.Path, r.opts.Mode.Verb(), out.Bucket)
	case StatusSkippedConflict:
		ev.Level = zerolog.WarnLevel
		ev.Message = fmt.Sprintf("File %s skipped, %s already exists", out.Path, out.Target)
	case StatusFailed:
		ev.Level = zerolog.ErrorLevel
		ev.Message = failureMessage(out)
	default:
		ev.Level = zerolog.DebugLevel
		ev.Message = fmt.Sprintf("File %s skipped (%s)", out.Path, out.Status)
	}

	r.observer.Record(ctx, ev)
}

func failureMessage(out Outcome) string {
	switch out.Err.Kind {
	case KindNotFound:
		return fmt.Sprintf("File %s could not be found, error: %v", out.Path, out.Err.Err)
	case KindDirectoryAccess:
		return fmt.Sprintf("File %s could not be placed in %s, error: %v", out.Path, out.Bucket, out.Err.Err)
	case KindIO:
		return fmt.Sprintf("File %s could not be transferred, error: %v", out.Path, out.Err.Err)
	default:
		return fmt.Sprintf("File %s got unknown error: %v", out.Path, out.Err.Err)
	}
}

func (r *run) summarize(ctx context.Context, res *Result) {
	r.observer.Record(ctx, Event{
		Level:   zerolog.InfoLevel,
		Message: fmt.Sprintf("Files %s: %s", r.opts.Mode.Verb(), res.Summary()),
		Mode:    r.opts.Mode,
		Result:  res,
	})
}
