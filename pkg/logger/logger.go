package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config controls log output.
type Config struct {
	Level     string `env:"LOG_LEVEL" envDefault:"info"`
	Format    string `env:"LOG_FORMAT" envDefault:"json"` // json or text
	Component string `env:"LOG_COMPONENT" envDefault:"janrain"`

	// Sentry is enabled only when SentryDSN is set.
	SentryDSN         string `env:"SENTRY_DSN"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
}

// New creates a logger writing to stdout.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, extractors...)
}

// NewWithWriter creates a logger writing to w. When cfg.SentryDSN is set,
// warnings are also recorded in Sentry and errors create Sentry issues.
// If Sentry cannot be initialized the logger keeps working without it.
func NewWithWriter(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var out slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		out = slog.NewTextHandler(w, opts)
	} else {
		out = slog.NewJSONHandler(w, opts)
	}

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
			EnableLogs:  true,
		})
		if err != nil {
			slog.New(out).Error("sentry init failed, logging to output only", slog.String("error", err.Error()))
		} else {
			sh := sentryslog.Option{
				EventLevel: []slog.Level{slog.LevelError},
				LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
			}.NewSentryHandler(context.Background())
			out = fanout{out, sh}
		}
	}

	l := slog.New(WithExtractors(out, extractors...))
	if cfg.Component != "" {
		l = l.With(slog.String("component", cfg.Component))
	}
	return l
}

// ParseLevel maps debug, info, warn and error (case-insensitive) to slog levels.
// Anything else yields slog.LevelInfo.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Flush waits up to timeout for buffered Sentry events to be delivered.
// It is a no-op when Sentry was never initialized.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

// Error returns an "error" attribute for err.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}
