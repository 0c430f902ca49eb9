// Package telemetry groups the observability subsystems of the relay:
// structured logging (telemetry/logging) and Prometheus metrics
// (telemetry/metrics).
package telemetry
