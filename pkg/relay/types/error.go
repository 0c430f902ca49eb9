package types

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON error envelope returned for all error conditions.
// Every error carries a human-readable message; most also carry a symbolic,
// machine-readable code. Details are populated only when the server runs in
// development mode.
type ErrorResponse struct {
	// Error is a human-readable error message.
	Error string `json:"error"`

	// Code is a machine-readable error code.
	Code string `json:"code,omitempty"`

	// Message carries supplementary human-readable context.
	// Set on timeout responses.
	Message string `json:"message,omitempty"`

	// Details carries diagnostic context (development mode only).
	Details string `json:"details,omitempty"`

	// RetryAfter is the suggested wait in seconds before retrying.
	// Set only on rate-limit rejections.
	RetryAfter int `json:"retryAfter,omitempty"`
}

// Error code constants for common error scenarios.
const (
	// CodeMissingAPIKey indicates the LastFM API key is not configured.
	CodeMissingAPIKey = "MISSING_API_KEY"

	// CodeMissingUsernameConfig indicates the default LastFM username is not configured.
	CodeMissingUsernameConfig = "MISSING_USERNAME_CONFIG"

	// CodeMissingDiscordToken indicates the Discord bot token is not configured.
	CodeMissingDiscordToken = "MISSING_DISCORD_TOKEN"

	// CodeMissingDiscordUserID indicates the Discord user ID is not configured.
	CodeMissingDiscordUserID = "MISSING_DISCORD_USER_ID"

	// CodeUserNotFound indicates the LastFM user does not exist.
	CodeUserNotFound = "USER_NOT_FOUND"

	// CodeInvalidAPIKey indicates LastFM rejected the configured API key.
	CodeInvalidAPIKey = "INVALID_API_KEY"

	// CodeRateLimitExceeded indicates the upstream rate limit was hit.
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"

	// CodeAPIError indicates an unclassified structured upstream error.
	CodeAPIError = "API_ERROR"

	// CodeInvalidJSON indicates the request body is not valid JSON.
	CodeInvalidJSON = "INVALID_JSON"

	// CodePayloadTooLarge indicates the request body exceeds the size limit.
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"

	// CodeNotFound indicates no route matched the request path.
	CodeNotFound = "NOT_FOUND"

	// CodeInternalError indicates an internal server error.
	CodeInternalError = "INTERNAL_ERROR"
)

// NewError creates an error response with a message and symbolic code.
func NewError(message, code string) *ErrorResponse {
	return &ErrorResponse{Error: message, Code: code}
}

// NewErrorWithDetails creates an error response carrying diagnostic details.
// Callers gate details on the development flag before passing them in.
func NewErrorWithDetails(message, code, details string) *ErrorResponse {
	return &ErrorResponse{Error: message, Code: code, Details: details}
}

// WriteJSON writes v as a JSON response with the given status code.
// Encoding errors are ignored; at this point headers are already sent.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an error envelope with the given status code.
func WriteError(w http.ResponseWriter, status int, errResp *ErrorResponse) {
	WriteJSON(w, status, errResp)
}
