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
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/idesync/pkg/workflow"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 10 // Width for status text
)

// 📦 ProjectOperation describes one project being synced
type ProjectOperation struct {
	Root   string // Project root
	DryRun bool   // Whether files are only reported
}

// ⚙️ Option configures a Logger
type Option func(*options)

type options struct {
	output  io.Writer
	logFile *lumberjack.Logger
}

// WithOutput sends structured logs to w instead of a console writer on stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithLogFile also writes structured logs as JSON to a rotating file at path.
func WithLogFile(path string) Option {
	return func(o *options) {
		if path == "" {
			return
		}
		o.logFile = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	closer    io.Closer
	mu        sync.Mutex
	currentOp *ProjectOperation
	results   []workflow.Result
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level, opts ...Option) *Logger {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var out io.Writer = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})
	if o.output != nil {
		out = o.output
	}

	l := &Logger{console: console}
	if o.logFile != nil {
		out = zerolog.MultiLevelWriter(out, o.logFile)
		l.closer = o.logFile
	}

	l.zlog = zerolog.New(out).With().Timestamp().Logger().Level(level)
	return l
}

// Zerolog returns the structured logger, for attaching to a context.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context, along with its zerolog logger
func NewContext(ctx context.Context, l *Logger) context.Context {
	ctx = l.zlog.WithContext(ctx)
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatResult formats a sync result for display
func (l *Logger) formatResult(r workflow.Result) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case r.IsError():
		symbol = '✗'
		symbolColor = color.FgRed
		status = "error"
	case r.DryRun():
		symbol = '○'
		symbolColor = color.FgYellow
		status = "planned"
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
		status = "synced"
	}

	name := r.Filename
	if name == "" {
		name = "(workflows)"
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, name),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", statusWidth, status)))

	switch {
	case r.IsError():
		line += color.New(color.FgRed).Sprint(r.Error)
	case r.Path != "":
		line += color.New(color.Faint).Sprint(r.Path)
	}
	return line
}

// 📝 LogResult logs a single sync result
func (l *Logger) LogResult(ctx context.Context, r workflow.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.results = append(l.results, r)

	fmt.Fprintln(l.console, l.formatResult(r))

	ev := l.zlog.Info()
	if r.IsError() {
		ev = l.zlog.Error().Str("error", r.Error)
	}
	ev.Str("agent", r.Agent).
		Str("type", string(r.Type)).
		Str("file", r.Filename).
		Str("path", r.Path).
		Msg("workflow result")
}

// 📝 StartProject starts reporting a project sync
func (l *Logger) StartProject(ctx context.Context, op ProjectOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.results = nil

	mode := "sync"
	if op.DryRun {
		mode = "dry run"
	}

	fmt.Fprintf(l.console, "[%s %s]\n",
		mode,
		color.New(color.FgCyan).Sprint(op.Root))

	l.zlog.Info().
		Str("project", op.Root).
		Bool("dry_run", op.DryRun).
		Msg("starting project sync")
}

// 📝 EndProject ends the current project and returns the summary of the results logged for it
func (l *Logger) EndProject(ctx context.Context) workflow.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return workflow.Summary{}
	}

	summary := workflow.Summarize(l.results)
	l.zlog.Info().
		Str("project", l.currentOp.Root).
		Int("synced", summary.Synced).
		Int("planned", summary.Planned).
		Int("failed", summary.Failed).
		Msg("project sync complete")

	l.currentOp = nil
	l.results = nil
	return summary
}

// 📊 FormatSummary renders a one-line summary
func FormatSummary(s workflow.Summary) string {
	return fmt.Sprintf("%d synced, %d planned, %d failed", s.Synced, s.Planned, s.Failed)
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("idesync")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
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

func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
