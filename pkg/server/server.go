// Package server assembles the relay's HTTP server: routes, the middleware
// pipeline, and the graceful shutdown lifecycle.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"tamewtf/relay/pkg/audit"
	"tamewtf/relay/pkg/config"
	"tamewtf/relay/pkg/limits/ratelimit"
	"tamewtf/relay/pkg/relay/handlers"
	"tamewtf/relay/pkg/relay/middleware"
	"tamewtf/relay/pkg/telemetry/logging"
	"tamewtf/relay/pkg/telemetry/metrics"
)

// Options carries the dependencies the server needs beyond configuration.
type Options struct {
	// Logger is the structured logger. Required.
	Logger *logging.Logger

	// Collector records request metrics. May be nil when metrics are
	// disabled.
	Collector *metrics.Collector

	// AuditStore records completed requests. May be nil when auditing is
	// disabled.
	AuditStore audit.Store
}

// Server is the relay's HTTP server.
type Server struct {
	config     *config.Config
	logger     *logging.Logger
	collector  *metrics.Collector
	auditStore audit.Store

	lastfmLimiter *ratelimit.SlidingWindowLog
	globalLimiter *ratelimit.SlidingWindowLog

	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a new relay server. The rate limiters are constructed
// here and live for the lifetime of the server; limit changes require a
// restart even though credentials hot-reload.
func NewServer(cfg *config.Config, opts Options) *Server {
	return &Server{
		config:     cfg,
		logger:     opts.Logger,
		collector:  opts.Collector,
		auditStore: opts.AuditStore,
		lastfmLimiter: ratelimit.NewSlidingWindowLog(ratelimit.Config{
			Window:          cfg.Limits.LastFM.Window,
			MaxRequests:     cfg.Limits.LastFM.MaxRequests,
			CleanupInterval: cfg.Limits.CleanupInterval,
		}),
		globalLimiter: ratelimit.NewSlidingWindowLog(ratelimit.Config{
			Window:          cfg.Limits.Global.Window,
			MaxRequests:     cfg.Limits.Global.MaxRequests,
			CleanupInterval: cfg.Limits.CleanupInterval,
		}),
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until ctx is cancelled or the
// listener fails. Signal handling belongs to the caller; cancel ctx to
// trigger a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting relay server",
			"address", s.config.Server.ListenAddress,
			"request_timeout", s.config.Server.RequestTimeout.String(),
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		s.logger.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server and releases the limiters.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.logger.Info("initiating graceful shutdown",
			"timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.lastfmLimiter.Close()
		s.globalLimiter.Close()

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("relay server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware pipeline.
//
// The pipeline order is fixed: recovery wraps everything; request ID,
// logging, metrics, and audit observe each exchange; security headers and
// CORS are stamped before any admission decision so rejections carry them
// too; the LastFM-scoped limiter runs before the global one and admissions
// are not rolled back; the timeout guard is innermost so the 408 is the
// pipeline's own response, already decorated by the outer layers.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	lastfmHandler := handlers.NewLastFMHandler(s.logger, s.collector)
	discordHandler := handlers.NewDiscordHandler(s.logger, s.collector)

	mux.HandleFunc("/lastfm/recent", lastfmHandler.RecentTracks)
	mux.HandleFunc("/lastfm/top-tracks", lastfmHandler.TopTracks)
	mux.HandleFunc("/discord/profile", discordHandler.Profile)
	mux.Handle("/health", handlers.NewHealthHandler())
	mux.Handle("/ready", handlers.NewReadyHandler(s.auditStore))

	if s.collector != nil && s.config.Telemetry.Metrics.Enabled {
		path := s.config.Telemetry.Metrics.Path
		if path == "" {
			path = config.DefaultMetricsPath
		}
		mux.Handle(path, s.collector.Handler())
	}

	// Banner and directory-carrying 404, matching every remaining path.
	mux.Handle("/", handlers.NewRootHandler())

	var handler http.Handler = mux

	handler = middleware.Timeout(s.config.Server.RequestTimeout, s.collector, s.logger)(handler)
	handler = middleware.BodyLimit(s.config.Server.MaxBodyBytes)(handler)
	handler = middleware.RateLimit(s.globalLimiter, middleware.RateLimitOptions{
		Scope:     "global",
		Collector: s.collector,
	})(handler)
	handler = middleware.RateLimit(s.lastfmLimiter, middleware.RateLimitOptions{
		Scope:      "lastfm",
		PathPrefix: "/lastfm",
		Collector:  s.collector,
	})(handler)
	handler = middleware.CORS(s.config.Server.CORS)(handler)
	handler = middleware.SecurityHeaders(handler)
	if s.auditStore != nil {
		handler = middleware.Audit(s.auditStore, s.logger)(handler)
	}
	if s.collector != nil {
		handler = middleware.Metrics(s.collector)(handler)
	}
	handler = middleware.Logging(s.logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler. Exposed for tests that
// drive the full pipeline through httptest.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
