package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config controls logger construction. The zero value produces an
// info-level text logger on stdout.
type Config struct {
	// Level is the minimum level: "debug", "info", "warn", or "error".
	Level string `yaml:"level"`

	// Format selects the local handler: "text" (default) or "json".
	Format string `yaml:"format"`

	// SentryDSN enables Sentry reporting when non-empty.
	SentryDSN string `yaml:"sentry_dsn"`

	// Environment tags Sentry events; defaults to "production".
	Environment string `yaml:"environment"`
}

// New builds the process logger from config.
func New(cfg Config) *slog.Logger {
	level := parseLevel(cfg.Level)

	var local slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		local = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		local = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	if cfg.SentryDSN == "" {
		return slog.New(local)
	}

	env := cfg.Environment
	if env == "" {
		env = "production"
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: env,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("sentry init failed, continuing with local logging only",
			slog.String("error", err.Error()))
		return slog.New(local)
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(newFanoutHandler(local, sentryHandler))
}

// NewNop returns a logger that discards everything. Used as the default in
// libraries and in tests.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
