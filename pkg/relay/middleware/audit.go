package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"tamewtf/relay/pkg/audit"
	"tamewtf/relay/pkg/telemetry/logging"
)

// Audit records each completed request in the audit store. The query string
// is deliberately dropped from the recorded path because upstream
// credentials travel in it. Store failures are logged, never surfaced to
// the client.
func Audit(store audit.Store, logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			entry := &audit.Entry{
				ID:        uuid.NewString(),
				RequestID: GetRequestID(r.Context()),
				Time:      time.Now().UTC(),
				Method:    r.Method,
				Path:      r.URL.Path,
				Status:    rw.statusCode,
				ClientKey: ClientKey(r),
				LatencyMs: time.Since(start).Milliseconds(),
				UserAgent: r.UserAgent(),
			}

			// The request context may already be cancelled (timeouts,
			// disconnects); the record still has to land.
			recordCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := store.Record(recordCtx, entry); err != nil && logger != nil {
				logger.Error("failed to record audit entry",
					"error", err,
					"request_id", entry.RequestID,
				)
			}
		})
	}
}
