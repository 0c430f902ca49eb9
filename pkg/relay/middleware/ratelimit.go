package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"tamewtf/relay/pkg/limits/ratelimit"
	"tamewtf/relay/pkg/relay/types"
	"tamewtf/relay/pkg/telemetry/metrics"
)

// RateLimitOptions configures a rate limiting middleware instance.
type RateLimitOptions struct {
	// Scope labels this limiter in metrics ("lastfm", "global").
	Scope string

	// PathPrefix restricts the limiter to paths under the prefix.
	// Empty applies the limiter to every path.
	PathPrefix string

	// Collector records rejections. May be nil.
	Collector *metrics.Collector

	// Now supplies the current time. Defaults to time.Now; tests inject a
	// fixed clock.
	Now func() time.Time
}

// RateLimit admits or rejects requests against a sliding window limiter
// keyed by client address. Admitted requests carry X-RateLimit-Limit,
// X-RateLimit-Remaining, and X-RateLimit-Reset (ISO-8601) headers;
// rejections receive a 429 with a retryAfter hint in seconds.
//
// Stacked limiters do not roll back: a request admitted by an earlier
// limiter and rejected by a later one still consumed its slot in the
// earlier window.
func RateLimit(limiter *ratelimit.SlidingWindowLog, opts RateLimitOptions) func(http.Handler) http.Handler {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.PathPrefix != "" && !strings.HasPrefix(r.URL.Path, opts.PathPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			decision := limiter.Admit(ClientKey(r), now())

			if !decision.Allowed {
				if opts.Collector != nil {
					opts.Collector.RecordRateLimited(opts.Scope)
				}

				types.WriteJSON(w, http.StatusTooManyRequests, &types.ErrorResponse{
					Error:      "Too many requests",
					RetryAfter: decision.RetryAfterSeconds(),
				})
				return
			}

			// When limiters stack, each admitting limiter overwrites these
			// headers, so the innermost one wins: /lastfm responses report
			// the global budget even when the scoped budget is nearer
			// exhaustion. Preserved stacked-limiter behavior.
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", decision.Reset.UTC().Format(time.RFC3339))

			next.ServeHTTP(w, r)
		})
	}
}
