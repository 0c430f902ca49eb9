package middleware

import (
	"net/http"
	"strings"
	"time"

	"tamewtf/relay/pkg/telemetry/metrics"
)

// routeLabel maps a request path to a bounded metric label. Unknown paths
// collapse into "other" to keep label cardinality fixed.
func routeLabel(path string) string {
	switch {
	case path == "/":
		return "/"
	case path == "/health" || path == "/ready" || path == "/metrics":
		return path
	case strings.HasPrefix(path, "/lastfm/recent"):
		return "/lastfm/recent"
	case strings.HasPrefix(path, "/lastfm/top-tracks"):
		return "/lastfm/top-tracks"
	case strings.HasPrefix(path, "/discord/profile"):
		return "/discord/profile"
	default:
		return "other"
	}
}

// Metrics records request counts, durations, and the in-flight gauge.
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			collector.RequestStarted()
			defer collector.RequestFinished()

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			collector.RecordRequest(routeLabel(r.URL.Path), r.Method, rw.statusCode, time.Since(start))
		})
	}
}
