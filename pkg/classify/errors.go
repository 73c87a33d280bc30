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
	"fmt"
	"io"
	"io/fs"
	"os"

	"gitlab.com/tozd/go/errors"
)

var (
	ErrInvalidMode     = errors.Base("invalid transfer mode")
	ErrInvalidConflict = errors.Base("invalid conflict policy")
	ErrTargetExists    = errors.Base("target already exists")
	ErrNotDirectory    = errors.Base("not a directory")
)

// ❌ ErrorKind tags why a single file could not be transferred
type ErrorKind int

const (
	KindUnknown         ErrorKind = iota
	KindNotFound                  // source vanished or path invalid at transfer time
	KindDirectoryAccess           // bucket could not be created or used
	KindIO                        // permission or I/O failure during transfer
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindDirectoryAccess:
		return "directory_access"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// FileError is the failure recorded for one file. It never escapes a run.
type FileError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// DirectoryCreateError is returned when the destination root cannot be established.
type DirectoryCreateError struct {
	Path string
	Err  error
}

func (e *DirectoryCreateError) Error() string {
	return fmt.Sprintf("creating destination %s: %v", e.Path, e.Err)
}

func (e *DirectoryCreateError) Unwrap() error {
	return e.Err
}

// newTransferError tags a transfer failure with its kind
func newTransferError(path string, err error) *FileError {
	return &FileError{Kind: transferKind(err), Path: path, Err: err}
}

func transferKind(err error) ErrorKind {
	var (
		pathErr *fs.PathError
		linkErr *os.LinkError
		sysErr  *os.SyscallError
	)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission),
		errors.Is(err, ErrTargetExists),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.ErrShortWrite),
		errors.As(err, &pathErr),
		errors.As(err, &linkErr),
		errors.As(err, &sysErr):
		return KindIO
	default:
		return KindUnknown
	}
}
