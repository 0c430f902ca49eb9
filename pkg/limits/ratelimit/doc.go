// Package ratelimit provides per-client sliding window rate limiting.
//
// The limiter tracks one timestamp log per client key and admits a request
// only when fewer than the configured maximum fall inside the trailing
// window. Two limiter instances with different configurations can be stacked
// on the same route; each keeps independent state.
//
// State is process-lifetime only. There is no cross-process coordination, so
// the limiter is only suitable for single-instance deployments.
package ratelimit
