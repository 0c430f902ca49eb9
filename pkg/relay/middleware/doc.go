// Package middleware provides the HTTP middleware chain for the relay.
//
// The chain is assembled by the server in a fixed order: recovery, request
// ID, logging, metrics, audit, security headers, CORS, the LastFM-scoped
// rate limiter, the global rate limiter, body limit, and the request
// timeout. Each middleware follows the standard func(http.Handler)
// http.Handler shape so the composition stays plain ServeMux wiring.
//
// The two rate limiters stack without rollback: a request admitted by the
// LastFM limiter but rejected by the global limiter keeps its slot in the
// LastFM window.
package middleware
