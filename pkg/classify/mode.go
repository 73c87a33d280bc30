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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🚚 Mode selects how files reach their bucket
type Mode int

const (
	ModeCopy Mode = iota // duplicate, origin stays intact
	ModeMove             // relocate, origin entry is removed
)

// ParseMode accepts the menu numbers ("1", "2") or the names ("copy", "move").
// An empty answer means copy.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "1", "copy":
		return ModeCopy, nil
	case "2", "move":
		return ModeMove, nil
	default:
		return ModeCopy, errors.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

func (m Mode) String() string {
	if m == ModeMove {
		return "move"
	}
	return "copy"
}

// Verb is the past tense used in log lines ("copied", "moved")
func (m Mode) Verb() string {
	if m == ModeMove {
		return "moved"
	}
	return "copied"
}

// 🎯 Transferer returns the transfer strategy for the mode
func (m Mode) Transferer() Transferer {
	if m == ModeMove {
		return mover{}
	}
	return copier{}
}

// ⚔️ ConflictPolicy decides what happens when the bucket already holds a file
// with the same name
type ConflictPolicy int

const (
	ConflictOverwrite ConflictPolicy = iota // replace the existing file
	ConflictSkip                            // leave both files untouched
	ConflictFail                            // record a KindIO failure
)

// ParseConflict parses "overwrite", "skip" or "fail". Empty means overwrite.
func ParseConflict(s string) (ConflictPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overwrite":
		return ConflictOverwrite, nil
	case "skip":
		return ConflictSkip, nil
	case "fail":
		return ConflictFail, nil
	default:
		return ConflictOverwrite, errors.Errorf("%w: %q", ErrInvalidConflict, s)
	}
}

func (c ConflictPolicy) String() string {
	switch c {
	case ConflictSkip:
		return "skip"
	case ConflictFail:
		return "fail"
	default:
		return "overwrite"
	}
}
