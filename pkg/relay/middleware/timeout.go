package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"tamewtf/relay/pkg/relay/types"
	"tamewtf/relay/pkg/telemetry/logging"
	"tamewtf/relay/pkg/telemetry/metrics"
)

// timeoutWriter guards the underlying ResponseWriter so that exactly one
// party writes a response: either the handler or the timeout path. Once the
// timeout response has been sent, late handler writes are discarded.
type timeoutWriter struct {
	w http.ResponseWriter

	mu          sync.Mutex
	timedOut    bool
	wroteHeader bool
	fallbackHdr http.Header
}

// Header returns the response headers. After a timeout it returns a
// detached map so late handler mutations cannot touch the sent response.
func (tw *timeoutWriter) Header() http.Header {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		if tw.fallbackHdr == nil {
			tw.fallbackHdr = make(http.Header)
		}
		return tw.fallbackHdr
	}
	return tw.w.Header()
}

// WriteHeader forwards the status unless the timeout response already won.
func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	tw.w.WriteHeader(code)
}

// Write forwards the body unless the timeout response already won.
func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return len(b), nil
	}
	if !tw.wroteHeader {
		tw.wroteHeader = true
		tw.w.WriteHeader(http.StatusOK)
	}
	return tw.w.Write(b)
}

// markTimedOut claims the response for the timeout path. It reports false
// when the handler has already started writing, in which case the timeout
// response must not be sent.
func (tw *timeoutWriter) markTimedOut() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.wroteHeader {
		return false
	}
	tw.timedOut = true
	return true
}

// Timeout bounds request handling. When the deadline expires before the
// handler has written anything, the client receives a 408 and whatever the
// handler produces afterwards is discarded. If the handler started writing
// first, the response is left alone and the handler finishes normally.
//
// The handler's context is cancelled on timeout, which also aborts any
// in-flight upstream call.
func Timeout(timeout time.Duration, collector *metrics.Collector, logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			tw := &timeoutWriter{w: w}
			done := make(chan struct{})

			go func() {
				defer close(done)
				defer func() {
					if p := recover(); p != nil {
						if logger != nil {
							logger.Error("panic in handler",
								"error", p,
								"request_id", GetRequestID(r.Context()),
								"path", r.URL.Path,
								"stack", string(debug.Stack()),
							)
						}
						types.WriteError(tw, http.StatusInternalServerError,
							types.NewError("Internal server error", types.CodeInternalError))
					}
				}()

				next.ServeHTTP(tw, r.WithContext(ctx))
			}()

			select {
			case <-done:
				return

			case <-ctx.Done():
				if ctx.Err() != context.DeadlineExceeded {
					// Client went away; nothing to write.
					<-done
					return
				}

				if !tw.markTimedOut() {
					// Handler won the race and is mid-response.
					<-done
					return
				}

				if collector != nil {
					collector.RecordTimeout()
				}
				if logger != nil {
					logger.Warn("request timed out",
						"request_id", GetRequestID(r.Context()),
						"method", r.Method,
						"path", r.URL.Path,
						"timeout_ms", timeout.Milliseconds(),
					)
				}

				types.WriteJSON(w, http.StatusRequestTimeout, &types.ErrorResponse{
					Error:   "Request timeout",
					Message: fmt.Sprintf("Request took longer than %dms", timeout.Milliseconds()),
				})
			}
		})
	}
}
