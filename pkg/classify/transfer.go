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
	"io"
	"io/fs"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 📦 Transfer describes a completed (or skipped) transfer
type Transfer struct {
	Target  string // final path inside the bucket
	Bytes   int64  // size of the transferred file
	Skipped bool   // target existed and the policy was ConflictSkip
}

// 🚚 Transferer places src inside bucket, keeping its base name
type Transferer interface {
	Transfer(ctx context.Context, fsys afero.Fs, src, bucket string, policy ConflictPolicy) (Transfer, error)
}

type copier struct{}

func (copier) Transfer(ctx context.Context, fsys afero.Fs, src, bucket string, policy ConflictPolicy) (Transfer, error) {
	target, skip, err := resolveTarget(fsys, src, bucket, policy)
	if err != nil {
		return Transfer{}, err
	}
	if skip {
		return Transfer{Target: target, Skipped: true}, nil
	}

	n, err := copyFile(fsys, src, target)
	if err != nil {
		return Transfer{}, err
	}

	return Transfer{Target: target, Bytes: n}, nil
}

type mover struct{}

func (mover) Transfer(ctx context.Context, fsys afero.Fs, src, bucket string, policy ConflictPolicy) (Transfer, error) {
	info, err := fsys.Stat(src)
	if err != nil {
		return Transfer{}, errors.Errorf("checking source: %w", err)
	}

	target, skip, err := resolveTarget(fsys, src, bucket, policy)
	if err != nil {
		return Transfer{}, err
	}
	if skip {
		return Transfer{Target: target, Skipped: true}, nil
	}

	if err := fsys.Rename(src, target); err != nil {
		if !errors.Is(err, syscall.EXDEV) {
			return Transfer{}, errors.Errorf("renaming into bucket: %w", err)
		}

		zerolog.Ctx(ctx).Debug().Str("file", src).Str("target", target).Msg("cross-device move, falling back to copy")

		if _, err := copyFile(fsys, src, target); err != nil {
			return Transfer{}, err
		}
		if err := fsys.Remove(src); err != nil {
			return Transfer{}, errors.Errorf("removing source after copy: %w", err)
		}
	}

	return Transfer{Target: target, Bytes: info.Size()}, nil
}

// 🔍 resolveTarget applies the conflict policy to <bucket>/<base name of src>
func resolveTarget(fsys afero.Fs, src, bucket string, policy ConflictPolicy) (string, bool, error) {
	target := filepath.Join(bucket, filepath.Base(src))

	_, err := fsys.Stat(target)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		return target, false, nil
	default:
		return "", false, errors.Errorf("checking target: %w", err)
	}

	switch policy {
	case ConflictSkip:
		return target, true, nil
	case ConflictFail:
		return "", false, errors.Errorf("%w: %s", ErrTargetExists, target)
	default:
		return target, false, nil
	}
}

// 📝 copyFile writes src to a temp file next to target and renames it into place
func copyFile(fsys afero.Fs, src, target string) (int64, error) {
	in, err := fsys.Open(src)
	if err != nil {
		return 0, errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, errors.Errorf("reading source info: %w", err)
	}

	tmp, err := afero.TempFile(fsys, filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return 0, errors.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, in)
	if err != nil {
		tmp.Close()
		fsys.Remove(tmpName)
		return 0, errors.Errorf("copying content: %w", err)
	}

	if err := tmp.Close(); err != nil {
		fsys.Remove(tmpName)
		return 0, errors.Errorf("closing temp file: %w", err)
	}

	if err := fsys.Chmod(tmpName, info.Mode().Perm()); err != nil {
		fsys.Remove(tmpName)
		return 0, errors.Errorf("setting permissions: %w", err)
	}

	if err := fsys.Rename(tmpName, target); err != nil {
		fsys.Remove(tmpName)
		return 0, errors.Errorf("renaming temp file: %w", err)
	}

	return n, nil
}
