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

package log

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/extsort/pkg/classify"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	bucketWidth = 10 // Width for bucket key
	statusWidth = 12 // Width for status text
)

// 📦 RunOperation describes the run being logged
type RunOperation struct {
	ID          string
	Origin      string
	Destination string
	Mode        classify.Mode
}

// 🎯 Logger is the logging sink for classification runs. It prints one
// colored line per file to the console and mirrors every event to zerolog.
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *RunOperation
	outcomes  []classify.Outcome
}

var _ classify.Observer = (*Logger)(nil)

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 📝 formatOutcome formats a per-file outcome for display
func (l *Logger) formatOutcome(out classify.Outcome) string {
	var symbol rune
	var symbolColor color.Attribute
	switch out.Status {
	case classify.StatusTransferred:
		symbol = '✓'
		symbolColor = color.FgGreen
	case classify.StatusFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case classify.StatusSkippedConflict:
		symbol = '⟳'
		symbolColor = color.FgYellow
	default:
		symbol = '-'
		symbolColor = color.FgCyan
	}

	bucket := out.Key
	if bucket == "" {
		bucket = "-"
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, filepath.Base(out.Path)),
		color.New(color.FgBlue).Sprint(fmt.Sprintf("%-*s", bucketWidth, bucket)),
		fmt.Sprintf("%-*s", statusWidth, out.Status))

	if out.Err != nil {
		line += color.New(color.Faint).Sprint(out.Err.Err.Error())
	}
	return line
}

// 📣 Record implements classify.Observer
func (l *Logger) Record(ctx context.Context, ev classify.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	zev := l.zlog.WithLevel(ev.Level).Str("mode", ev.Mode.String())
	if l.currentOp != nil && l.currentOp.ID != "" {
		zev = zev.Str("run_id", l.currentOp.ID)
	}

	switch {
	case ev.Outcome != nil:
		out := *ev.Outcome
		l.outcomes = append(l.outcomes, out)
		fmt.Fprintln(l.console, l.formatOutcome(out))

		zev = zev.Str("file", out.Path).Str("status", out.Status.String())
		if out.Bucket != "" {
			zev = zev.Str("bucket", out.Bucket)
		}
		if out.Err != nil {
			zev = zev.Str("kind", out.Err.Kind.String()).Err(out.Err.Err)
		}
	case ev.Result != nil:
		zev = zev.
			Int("scanned", len(ev.Result.Scanned)).
			Int("transferred", len(ev.Result.Transferred)).
			Int("failed", len(ev.Result.Failed()))
	}

	zev.Msg(ev.Message)
}

// 📝 StartRun starts a new run and prints its header
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.outcomes = nil

	fmt.Fprintf(l.console, "[%s %s]\n",
		op.Mode.String(),
		color.New(color.FgCyan).Sprint(op.Origin))

	fmt.Fprintf(l.console, "%s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Faint).Sprint("→"),
		color.New(color.Bold).Sprint(op.Destination))

	l.zlog.Info().
		Str("run_id", op.ID).
		Str("origin", op.Origin).
		Str("destination", op.Destination).
		Str("mode", op.Mode.String()).
		Msg("starting classification run")
}

// 📝 EndRun ends the current run
func (l *Logger) EndRun(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	l.zlog.Info().
		Str("run_id", l.currentOp.ID).
		Int("files", len(l.outcomes)).
		Msg("classification run complete")

	l.currentOp = nil
	l.outcomes = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header prints a banner
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.DefaultHeader.WithWriter(l.console).Printfln("extsort • %s", msg)
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
