package baseline

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures the Client during construction.
type Option func(*Client)

// WithBaseURL sets the remote endpoint template. The template must contain
// exactly one %s placeholder, which is substituted with the locale code.
// Defaults to DefaultBaseURL.
func WithBaseURL(template string) Option {
	return func(c *Client) {
		if template != "" {
			c.baseURL = template
		}
	}
}

// WithCacheDir sets the directory holding per-locale cache files.
// Defaults to a "langres/baseline" directory under the user cache dir.
func WithCacheDir(dir string) Option {
	return func(c *Client) {
		if dir != "" {
			c.cacheDir = dir
		}
	}
}

// WithTTL sets the freshness window after which cached content must be
// re-fetched. Defaults to DefaultTTL (24 hours).
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithTimeout sets the network fetch timeout. Defaults to DefaultTimeout.
// Ignored when a custom HTTP client is supplied.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client used for fetches. The caller owns
// the client's timeout and redirect policy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger for fetch and cache diagnostics.
// If unset, diagnostics are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithKnownLocales replaces the built-in list of locales the remote endpoint
// is known to serve.
func WithKnownLocales(locales ...string) Option {
	return func(c *Client) {
		if len(locales) > 0 {
			c.known = append([]string(nil), locales...)
		}
	}
}

// WithDisabled constructs the client in the disabled state: every Load
// returns an empty table with StatusDisabled and performs no I/O.
// The state can be flipped later with SetEnabled.
func WithDisabled() Option {
	return func(c *Client) {
		c.disabled = true
	}
}
