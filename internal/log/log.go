// Package log configures structured logging for the vectorkit command.
//
// Records go to standard error, as text or JSON, and optionally to a
// rotating JSON log file. Settings come from [Options], which [FromEnv]
// fills from the environment:
//
//   - VECTORKIT_LOG_LEVEL=debug|info|warn|error
//   - VECTORKIT_LOG_FORMAT=text|json
//   - VECTORKIT_LOG_FILE=<path>
package log

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction. The zero value logs at info level
// as text to standard error.
type Options struct {
	Level  string
	Format string
	// File enables an additional JSON log at this path, rotated by size.
	File string
	// Console is where console output goes. Nil means standard error.
	Console io.Writer
}

// FromEnv returns options read from the VECTORKIT_LOG_* environment
// variables.
func FromEnv() Options {
	return Options{
		Level:  os.Getenv("VECTORKIT_LOG_LEVEL"),
		Format: os.Getenv("VECTORKIT_LOG_FORMAT"),
		File:   os.Getenv("VECTORKIT_LOG_FILE"),
	}
}

// Merge returns o with every empty field replaced by the corresponding field
// of def.
func (o Options) Merge(def Options) Options {
	if o.Level == "" {
		o.Level = def.Level
	}
	if o.Format == "" {
		o.Format = def.Format
	}
	if o.File == "" {
		o.File = def.File
	}
	if o.Console == nil {
		o.Console = def.Console
	}
	return o
}

// ParseLevel converts a level name to a slog level. Unknown names map to
// info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger from opts. The returned closer releases the log file,
// if any.
func New(opts Options) (*slog.Logger, io.Closer) {
	ho := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		h = slog.NewJSONHandler(console, ho)
	} else {
		h = slog.NewTextHandler(console, ho)
	}

	var closer io.Closer = nopCloser{}
	if file := strings.TrimSpace(opts.File); file != "" {
		w := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		h = fanout{h, slog.NewJSONHandler(w, ho)}
		closer = w
	}
	return slog.New(h).With(slog.String("app", "vectorkit")), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

var (
	mu      sync.Mutex
	current *slog.Logger
	closer  io.Closer = nopCloser{}
)

// Init replaces the process-wide logger with one built from opts and makes
// it the slog default. The previous log file, if any, is closed.
func Init(opts Options) *slog.Logger {
	l, c := New(opts)
	mu.Lock()
	old := closer
	current, closer = l, c
	mu.Unlock()
	old.Close()
	slog.SetDefault(l)
	return l
}

// Close releases the log file opened by Init.
func Close() error {
	mu.Lock()
	c := closer
	closer = nopCloser{}
	mu.Unlock()
	return c.Close()
}

// L returns the process-wide logger, initializing it from the environment on
// first use.
func L() *slog.Logger {
	mu.Lock()
	l := current
	mu.Unlock()
	if l != nil {
		return l
	}
	return Init(FromEnv())
}

// WithComponent returns the process-wide logger annotated with a component
// name.
func WithComponent(name string) *slog.Logger {
	return L().With(slog.String("component", name))
}

// fanout passes every record to each of its handlers.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
