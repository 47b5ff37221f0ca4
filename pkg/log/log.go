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
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 30 // Base width for path
	kindWidth  = 10 // Width for operation kind
)

// Operation kinds reported while scaffolding.
const (
	KindCopied   = "copied"   // verbatim copy from the template root
	KindRendered = "rendered" // written after placeholder substitution
	KindStaged   = "staged"   // registered with the VCS staging area
	KindSkipped  = "skipped"  // excluded by an ignore pattern
	KindRemoved  = "removed"  // deleted by the clean operation
)

// 🎯 Operation represents one scaffolding step for logging
type Operation struct {
	Path         string // Path relative to the target root
	Kind         string // One of the Kind constants
	Day          int    // Day index, 0 for top-level files
	Replacements int    // Number of placeholder replacements made
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	operations []Operation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, falling back to a silent
// logger when none was attached.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard, zerolog.Disabled)
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatOperation formats a scaffolding step for display
func (l *Logger) formatOperation(op Operation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Kind {
	case KindCopied:
		symbol = '✓'
		symbolColor = color.FgGreen
	case KindRendered:
		symbol = '✓'
		symbolColor = color.FgCyan
	case KindStaged:
		symbol = '•'
		symbolColor = color.FgMagenta
	case KindSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
	case KindRemoved:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '?'
		symbolColor = color.FgWhite
	}

	detail := ""
	if op.Replacements > 0 {
		detail = fmt.Sprintf("%d replacements", op.Replacements)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", kindWidth, op.Kind)),
		detail)
}

// 📝 LogOperation logs one scaffolding step
func (l *Logger) LogOperation(ctx context.Context, op Operation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatOperation(op))

	l.zlog.Info().
		Str("path", op.Path).
		Str("kind", op.Kind).
		Int("day", op.Day).
		Int("replacements", op.Replacements).
		Msg("scaffold operation")
}

// 📝 StartDay prints a header for one day workspace
func (l *Logger) StartDay(ctx context.Context, day int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("day%d", day))

	l.zlog.Info().Int("day", day).Msg("scaffolding day workspace")
}

// 📊 Operations returns a copy of everything logged so far.
func (l *Logger) Operations() []Operation {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Operation, len(l.operations))
	copy(out, l.operations)
	return out
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("aocgen")
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

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}
