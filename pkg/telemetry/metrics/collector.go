package metrics

import (
	"strconv"
	"time"

	"tamewtf/relay/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector manages all Prometheus metrics for the relay. It owns the
// registry, registers every metric at construction, and provides recording
// methods for the request pipeline and the upstream clients.
//
// Metrics (with the configured namespace prefix):
//   - requests_total: request count by route, method, status
//   - request_duration_seconds: request duration histogram by route
//   - requests_in_flight: currently executing requests
//   - rate_limited_total: rejections by limiter scope
//   - request_timeouts_total: requests answered with 408
//   - upstream_requests_total: upstream calls by service and outcome
//   - upstream_request_duration_seconds: upstream call duration by service
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	rateLimitedTotal *prometheus.CounterVec
	timeoutsTotal    prometheus.Counter

	upstreamTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// NewCollector creates a metrics collector with the specified configuration
// and Prometheus registry. If registry is nil a fresh registry is used.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "relay"
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		cfg.RequestDurationBuckets = config.DefaultRequestDurationBuckets
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"route", "method", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"route"},
		),

		requestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being served",
			},
		),

		rateLimitedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "rate_limited_total",
				Help:      "Total number of requests rejected by a rate limiter",
			},
			[]string{"scope"},
		),

		timeoutsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "request_timeouts_total",
				Help:      "Total number of requests that exceeded the pipeline timeout",
			},
		),

		upstreamTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream API calls by service and outcome",
			},
			[]string{"service", "status"},
		),

		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Duration of upstream API calls in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"service"},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.requestsInFlight,
		c.rateLimitedTotal,
		c.timeoutsTotal,
		c.upstreamTotal,
		c.upstreamDuration,
	)

	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordRequest records metrics for a completed HTTP request.
func (c *Collector) RecordRequest(route, method string, status int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RequestStarted increments the in-flight gauge.
func (c *Collector) RequestStarted() {
	if !c.config.Enabled {
		return
	}
	c.requestsInFlight.Inc()
}

// RequestFinished decrements the in-flight gauge.
func (c *Collector) RequestFinished() {
	if !c.config.Enabled {
		return
	}
	c.requestsInFlight.Dec()
}

// RecordRateLimited records a rate limiter rejection for the given scope
// ("lastfm" or "global").
func (c *Collector) RecordRateLimited(scope string) {
	if !c.config.Enabled {
		return
	}
	c.rateLimitedTotal.WithLabelValues(scope).Inc()
}

// RecordTimeout records a request that was answered with 408.
func (c *Collector) RecordTimeout() {
	if !c.config.Enabled {
		return
	}
	c.timeoutsTotal.Inc()
}

// RecordUpstream records an upstream API call. Status is a coarse outcome
// label: "success", "error", or "timeout".
func (c *Collector) RecordUpstream(service, status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.upstreamTotal.WithLabelValues(service, status).Inc()
	c.upstreamDuration.WithLabelValues(service).Observe(duration.Seconds())
}
