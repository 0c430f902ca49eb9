package middleware

import (
	"context"
	"net"
	"net/http"
	"time"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// Context keys for storing values in request context.
const (
	// RequestIDKey stores the unique request ID.
	RequestIDKey contextKey = "request_id"

	// StartTimeKey stores the request start time for latency calculation.
	StartTimeKey contextKey = "start_time"
)

// GetRequestID extracts the request ID from the context.
// Returns empty string if not found.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetStartTime extracts the request start time from the context.
// Returns zero time if not found.
func GetStartTime(ctx context.Context) time.Time {
	if startTime, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return startTime
	}
	return time.Time{}
}

// ClientKey derives the rate limiting identity for a request: the remote
// host without the port. Malformed addresses fall back to the raw value.
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
