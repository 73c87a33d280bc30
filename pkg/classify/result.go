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
	"sort"
)

// 📊 Status is the final state of one scanned file
type Status int

const (
	StatusFailed          Status = iota
	StatusTransferred            // file landed in its bucket
	StatusSkippedNoKey           // name has no trailing alphanumeric run
	StatusSkippedConflict        // bucket already held the name and policy was skip
	StatusIgnored                // name matched an ignore pattern
)

func (s Status) String() string {
	switch s {
	case StatusTransferred:
		return "transferred"
	case StatusSkippedNoKey:
		return "no_key"
	case StatusSkippedConflict:
		return "conflict"
	case StatusIgnored:
		return "ignored"
	default:
		return "failed"
	}
}

// Outcome is the tagged result for one scanned file. Err is set only when
// Status is StatusFailed.
type Outcome struct {
	Path   string
	Key    string
	Bucket string
	Target string
	Bytes  int64
	Status Status
	Err    *FileError
}

// OK reports whether the file was transferred
func (o Outcome) OK() bool {
	return o.Status == StatusTransferred
}

// 📋 Result is produced fresh for every run
type Result struct {
	Origin      string
	Destination string
	Mode        Mode

	Scanned     []string  // discovery order
	Transferred []string  // completion order, subset of Scanned
	Outcomes    []Outcome // one per processed file, same order as Scanned
}

// Failed returns the outcomes that carry an error
func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Summary renders the transferred/scanned ratio, e.g. "4/5"
func (r *Result) Summary() string {
	return fmt.Sprintf("%d/%d", len(r.Transferred), len(r.Scanned))
}

// BucketStat aggregates the transferred files of one bucket
type BucketStat struct {
	Key   string
	Files int
	Bytes int64
}

// Buckets returns per-key totals of transferred files, sorted by key
func (r *Result) Buckets() []BucketStat {
	idx := map[string]int{}
	var stats []BucketStat
	for _, o := range r.Outcomes {
		if !o.OK() {
			continue
		}
		i, ok := idx[o.Key]
		if !ok {
			i = len(stats)
			idx[o.Key] = i
			stats = append(stats, BucketStat{Key: o.Key})
		}
		stats[i].Files++
		stats[i].Bytes += o.Bytes
	}
	sort.Slice(stats, func(a, b int) bool { return stats[a].Key < stats[b].Key })
	return stats
}
