package lastfm

import (
	"fmt"

	"tamewtf/relay/pkg/relay/types"
)

// LastFM structured error codes this relay maps specifically.
// Anything else falls through to a generic 400.
const (
	// ErrCodeUserNotFound is returned for unknown usernames.
	ErrCodeUserNotFound = 6

	// ErrCodeInvalidAPIKey is returned when the API key is rejected.
	ErrCodeInvalidAPIKey = 10

	// ErrCodeRateLimited is returned when LastFM throttles the caller.
	ErrCodeRateLimited = 29
)

// APIError is a structured error envelope returned by the LastFM API
// inside an otherwise successful HTTP exchange.
type APIError struct {
	// Code is the LastFM numeric error code
	Code int

	// Message is the error message from the upstream
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("lastfm api error %d: %s", e.Code, e.Message)
}

// errorBody extends the standard error envelope with the raw LastFM code
// for errors the relay does not map specifically.
type errorBody struct {
	types.ErrorResponse
	LastFMCode int `json:"lastfmCode,omitempty"`
}

// TranslateError maps a LastFM structured error to an HTTP status and
// response body. It is a pure function: same inputs, same output.
//
//	6     -> 404 USER_NOT_FOUND
//	10    -> 500 INVALID_API_KEY
//	29    -> 429 RATE_LIMIT_EXCEEDED
//	other -> 400 API_ERROR, upstream message plus raw code
func TranslateError(code int, message, username string) (int, any) {
	switch code {
	case ErrCodeUserNotFound:
		return 404, types.NewError(
			fmt.Sprintf("LastFM user %q not found", username),
			types.CodeUserNotFound,
		)
	case ErrCodeInvalidAPIKey:
		return 500, types.NewError("Invalid LastFM API key", types.CodeInvalidAPIKey)
	case ErrCodeRateLimited:
		return 429, types.NewError("LastFM API rate limit exceeded", types.CodeRateLimitExceeded)
	default:
		if message == "" {
			message = "LastFM API error"
		}
		return 400, &errorBody{
			ErrorResponse: types.ErrorResponse{Error: message, Code: types.CodeAPIError},
			LastFMCode:    code,
		}
	}
}
