package audit

import (
	"context"
	"time"
)

// Entry is one completed request as recorded in the audit log.
type Entry struct {
	// ID uniquely identifies this entry (UUID).
	ID string `json:"id"`

	// RequestID is the pipeline request ID (X-Request-ID).
	RequestID string `json:"request_id"`

	// Time is when the request completed.
	Time time.Time `json:"time"`

	// Method is the HTTP method.
	Method string `json:"method"`

	// Path is the request path, without the query string. The LastFM API
	// key travels in query strings, so queries are never recorded.
	Path string `json:"path"`

	// Status is the response status code.
	Status int `json:"status"`

	// ClientKey identifies the client as seen by the rate limiters.
	ClientKey string `json:"client_key"`

	// LatencyMs is the total handling time in milliseconds.
	LatencyMs int64 `json:"latency_ms"`

	// UserAgent is the client's User-Agent header.
	UserAgent string `json:"user_agent,omitempty"`
}

// Store persists audit entries. Implementations are safe for concurrent use.
type Store interface {
	// Record persists an entry.
	Record(ctx context.Context, entry *Entry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]*Entry, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int64, error)

	// DeleteOlderThan removes entries recorded before the cutoff and
	// returns how many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// Close releases store resources.
	Close() error
}
