package upstream

import (
	"fmt"
	"time"
)

// Error represents a failed upstream exchange: a transport failure or a
// non-2xx response without a structured error envelope this relay
// understands. It includes the upstream name, HTTP status code, and the
// underlying error.
type Error struct {
	// Service is the name of the upstream that failed
	Service string

	// StatusCode is the HTTP status code (0 if the request never completed)
	StatusCode int

	// Message is the error message
	Message string

	// Cause is the underlying error (if any)
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream %q error (status %d): %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream %q error: %s", e.Service, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// TimeoutError represents an upstream request timeout.
// This occurs when a request exceeds the client's configured timeout or the
// request context is cancelled while waiting.
type TimeoutError struct {
	// Service is the name of the upstream where the timeout occurred
	Service string

	// Timeout is the configured timeout duration
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("upstream %q request timeout after %s", e.Service, e.Timeout)
}

// ParseError represents a response parsing failure.
// This occurs when the upstream returns a malformed response body.
type ParseError struct {
	// Service is the name of the upstream that returned the malformed response
	Service string

	// Cause is the underlying parse error
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("upstream %q response parse error: %v", e.Service, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// CredentialsError represents missing upstream credentials.
// This is a deployment misconfiguration, not a client error: the request
// fails with a 500 and a symbolic code, but the process keeps serving.
type CredentialsError struct {
	// Service is the name of the upstream with missing configuration
	Service string

	// Field is the configuration field that is missing
	Field string
}

// Error implements the error interface.
func (e *CredentialsError) Error() string {
	return fmt.Sprintf("upstream %q missing credential %q", e.Service, e.Field)
}
