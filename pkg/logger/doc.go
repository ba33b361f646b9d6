// Package logger builds the process logger on top of log/slog.
//
// It supports text or JSON output, a configurable minimum level, and an
// optional Sentry handler for warning/error reporting. When no Sentry DSN is
// configured, or Sentry initialization fails, the logger degrades gracefully
// to local output only.
package logger
