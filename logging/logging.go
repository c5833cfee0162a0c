/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the sink contract.
type Logger interface {
	Error(msg any, keyvals ...any)
}

// Format selects how the console sink renders entries.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
)

// ParseFormat parses a format name. The empty string means FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatLogfmt:
		return f, nil
	default:
		return "", fmt.Errorf("logging: unknown format %q", s)
	}
}

func (f Format) formatter() log.Formatter {
	switch f {
	case FormatJSON:
		return log.JSONFormatter
	case FormatLogfmt:
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Option configures the console sink.
type Option func(*log.Options)

// WithFormat selects the output format.
func WithFormat(f Format) Option {
	return func(o *log.Options) { o.Formatter = f.formatter() }
}

// WithLevel sets the minimum level; error entries are emitted at any level
// up to "error".
func WithLevel(level string) Option {
	return func(o *log.Options) {
		if lvl, err := log.ParseLevel(level); err == nil {
			o.Level = lvl
		}
	}
}

// WithTimestamp toggles timestamps.
func WithTimestamp(on bool) Option {
	return func(o *log.Options) { o.ReportTimestamp = on }
}

// New returns a console sink writing to w.
func New(w io.Writer, opts ...Option) *log.Logger {
	o := log.Options{
		Prefix:          "errorable",
		Level:           log.ErrorLevel,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return log.NewWithOptions(w, o)
}

// Default returns the stdout console sink.
func Default() Logger {
	return New(os.Stdout)
}

// headlineStyle paints the headline red, the traditional color for errors in
// an operator console.
var headlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

// Headline renders "ERROR: <type>: <message>" in the error color.
func Headline(typeName, message string) string {
	return headlineStyle.Render(fmt.Sprintf("ERROR: %s: %s", typeName, message))
}

// Emit writes one entry to l and reports a panicking sink as an error
// instead of propagating it. A nil sink is a no-op.
func Emit(l Logger, msg any, keyvals ...any) (err error) {
	if l == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("logging: sink panicked: %v", r)
		}
	}()
	l.Error(msg, keyvals...)
	return nil
}

type slogAdapter struct {
	l *slog.Logger
}

func (a slogAdapter) Error(msg any, keyvals ...any) {
	a.l.Log(context.Background(), slog.LevelError, fmt.Sprint(msg), keyvals...)
}

// FromSlog adapts l to the Logger contract.
func FromSlog(l *slog.Logger) Logger {
	return slogAdapter{l: l}
}

type nop struct{}

func (nop) Error(any, ...any) {}

// Nop returns a sink that discards everything.
func Nop() Logger {
	return nop{}
}
