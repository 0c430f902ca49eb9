package middleware

import (
	"net/http"
	"runtime/debug"

	"tamewtf/relay/pkg/relay/types"
	"tamewtf/relay/pkg/telemetry/logging"
)

// Recovery recovers from panics in HTTP handlers and returns a 500 error
// envelope. The panic and stack trace are logged; clients never see
// internal details.
func Recovery(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic in handler",
						"error", err,
						"request_id", GetRequestID(r.Context()),
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					types.WriteError(w, http.StatusInternalServerError,
						types.NewError("Internal server error", types.CodeInternalError))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
