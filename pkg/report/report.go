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

// Package report renders the summary of a classification run as tables.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/walteh/extsort/pkg/classify"
	"github.com/walteh/extsort/pkg/state"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// Buckets renders one row per bucket plus a total footer
func Buckets(res *classify.Result) string {
	stats := res.Buckets()
	if len(stats) == 0 {
		return ""
	}

	var (
		rows  = make([][]string, 0, len(stats))
		files int
		bytes int64
	)
	for _, s := range stats {
		rows = append(rows, []string{s.Key, strconv.Itoa(s.Files), humanize.Bytes(uint64(s.Bytes))})
		files += s.Files
		bytes += s.Bytes
	}

	return renderTable(
		[]string{"Bucket", "Files", "Size"},
		rows,
		[]string{"total", strconv.Itoa(files), humanize.Bytes(uint64(bytes))},
		[]columnAlignment{alignLeft, alignRight, alignRight},
	)
}

// Failures renders one row per failed file
func Failures(res *classify.Result) string {
	failed := res.Failed()
	if len(failed) == 0 {
		return ""
	}

	rows := make([][]string, 0, len(failed))
	for _, o := range failed {
		rows = append(rows, []string{filepath.Base(o.Path), o.Err.Kind.String(), o.Err.Err.Error()})
	}

	return renderTable(
		[]string{"File", "Kind", "Error"},
		rows,
		nil,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	)
}

// History renders recorded runs, newest first
func History(runs []state.Run) string {
	if len(runs) == 0 {
		return ""
	}

	rows := make([][]string, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, []string{
			id,
			r.FinishedAt.Local().Format("2006-01-02 15:04"),
			r.Mode,
			r.Origin,
			r.Destination,
			r.Summary(),
			strconv.Itoa(r.Failed),
		})
	}

	return renderTable(
		[]string{"Run", "Finished", "Mode", "Origin", "Destination", "Files", "Failed"},
		rows,
		nil,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	)
}

// 📋 Write prints the bucket and failure tables followed by the
// transferred/scanned count
func Write(w io.Writer, res *classify.Result) error {
	for _, block := range []string{Buckets(res), Failures(res)} {
		if block == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, block); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Files %s: %s\n", res.Mode.Verb(), res.Summary())
	return err
}

func renderTable(headers []string, rows [][]string, footer []string, aligns []columnAlignment) string {
	columns := len(headers)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	if footer != nil {
		f := make(table.Row, columns)
		for i := 0; i < columns && i < len(footer); i++ {
			f[i] = footer[i]
		}
		tw.AppendFooter(f)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: align,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
