package langres

import (
	"log/slog"

	"github.com/packsmith/langres/pkg/baseline"
)

// Option configures the Engine during construction.
type Option func(*Engine)

// WithBaseline sets the remote baseline client. A default client is
// constructed when this option is omitted.
func WithBaseline(client *baseline.Client) Option {
	return func(e *Engine) {
		if client != nil {
			e.baseline = client
		}
	}
}

// WithLogger sets the engine logger. If unset, logging is discarded.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithLocale sets the initial locale. Defaults to DefaultLocale.
func WithLocale(locale string) Option {
	return func(e *Engine) {
		if locale != "" {
			e.locale = locale
		}
	}
}

// WithCandidateRoots sets the workspace-derived candidate roots scanned for
// override sources on every refresh.
func WithCandidateRoots(roots ...string) Option {
	return func(e *Engine) {
		e.candidateRoots = append([]string(nil), roots...)
	}
}

// WithConfiguredRoots sets explicitly configured roots. They are scanned
// after the candidate roots; roots already seen there are deduplicated, but
// new ones merge with higher precedence (discovery order is merge order).
func WithConfiguredRoots(roots ...string) Option {
	return func(e *Engine) {
		e.configuredRoots = append([]string(nil), roots...)
	}
}

// WithBaselineEnabled controls whether the baseline layer participates in
// refreshes. Enabled by default.
func WithBaselineEnabled(enabled bool) Option {
	return func(e *Engine) {
		e.baselineEnabled = enabled
	}
}
