package logger

import (
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"moneytracker/internal/utils/logger/slogpretty"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type options struct {
	out   io.Writer
	level *slog.Level
}

type Option func(*options)

// WithOutput sends log lines to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithLevel overrides the environment default. Unknown names are ignored.
func WithLevel(level string) Option {
	return func(o *options) {
		if l, ok := ParseLevel(level); ok {
			o.level = &l
		}
	}
}

// New builds the logger for env: colored text for local, JSON otherwise.
func New(env string, opts ...Option) *slog.Logger {
	o := options{out: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	level := slog.LevelDebug
	if env == EnvProd {
		level = slog.LevelInfo
	}
	if o.level != nil {
		level = *o.level
	}

	switch env {
	case EnvLocal, "":
		return setupPrettySlog(o.out, level)
	default:
		return slog.New(slog.NewJSONHandler(o.out, &slog.HandlerOptions{Level: level}))
	}
}

func setupPrettySlog(out io.Writer, level slog.Level) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	return slog.New(opts.NewPrettyHandler(out))
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
