package baseline

import "errors"

// Sentinel errors for baseline operations.
var (
	// ErrInvalidBaseURL is returned by New when the base URL template does
	// not contain a locale placeholder.
	ErrInvalidBaseURL = errors.New("baseline: base URL must contain a %s locale placeholder")

	// ErrUnexpectedStatus marks a fetch that completed with a non-2xx
	// response. It never escapes Load; it only appears in logs and wrapped
	// fetch errors.
	ErrUnexpectedStatus = errors.New("baseline: unexpected response status")
)
