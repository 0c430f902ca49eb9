package handlers

import (
	"context"
	"net/http"
	"time"

	"tamewtf/relay/pkg/audit"
	"tamewtf/relay/pkg/relay/types"
)

// HealthHandler handles health check requests for liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP implements http.Handler for liveness checks.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	types.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

// ReadyHandler handles readiness check requests. Readiness covers the
// dependencies the relay owns: the audit store, when one is configured.
// Upstream reachability is deliberately excluded; the relay is ready even
// when LastFM or Discord are down.
type ReadyHandler struct {
	store audit.Store
}

// NewReadyHandler creates a new readiness check handler. store may be nil
// when auditing is disabled.
func NewReadyHandler(store audit.Store) *ReadyHandler {
	return &ReadyHandler{store: store}
}

// ServeHTTP implements http.Handler for readiness checks.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := "ready"
	statusCode := http.StatusOK
	checks := map[string]string{}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if _, err := h.store.Count(ctx); err != nil {
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
			checks["audit"] = "unavailable"
		} else {
			checks["audit"] = "ok"
		}
	}

	types.WriteJSON(w, statusCode, map[string]any{
		"status":    status,
		"checks":    checks,
		"timestamp": time.Now().Unix(),
	})
}
