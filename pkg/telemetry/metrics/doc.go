// Package metrics provides Prometheus metrics for the relay: request
// counts and durations, in-flight gauge, rate limiter rejections, pipeline
// timeouts, and upstream call outcomes.
package metrics
