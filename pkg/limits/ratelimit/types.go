package ratelimit

import "time"

// Config contains configuration for a sliding window limiter.
type Config struct {
	// Window is the trailing time window length (e.g. 15 minutes).
	Window time.Duration

	// MaxRequests is the maximum number of admitted requests per key
	// within the window.
	MaxRequests int

	// CleanupInterval is how often the janitor sweeps idle keys.
	// Zero disables the janitor (useful for tests).
	CleanupInterval time.Duration
}

// Decision contains the result of an admission check.
type Decision struct {
	// Allowed indicates if the request is permitted.
	Allowed bool

	// Limit is the configured maximum for the window.
	Limit int

	// Remaining is how many requests remain in the window after this one.
	Remaining int

	// Reset is when a full budget would next be available, measured as
	// one window length from the admission check.
	Reset time.Time

	// RetryAfter suggests how long to wait before retrying.
	// Set only when the request is rejected.
	RetryAfter time.Duration
}

// RetryAfterSeconds returns RetryAfter rounded up to whole seconds.
// This is the value surfaced to clients in the 429 body.
func (d Decision) RetryAfterSeconds() int {
	if d.RetryAfter <= 0 {
		return 0
	}
	secs := int(d.RetryAfter / time.Second)
	if d.RetryAfter%time.Second != 0 {
		secs++
	}
	return secs
}
