package middleware

import (
	"net/http"

	"tamewtf/relay/pkg/relay/types"
)

// BodyLimit rejects requests whose declared body size exceeds the limit
// with a 413, and caps actual reads for requests without a Content-Length
// so a handler can never be fed more than maxBytes.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				types.WriteError(w, http.StatusRequestEntityTooLarge,
					types.NewError("Payload too large", types.CodePayloadTooLarge))
				return
			}

			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}

			next.ServeHTTP(w, r)
		})
	}
}
