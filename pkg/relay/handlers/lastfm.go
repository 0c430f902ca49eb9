package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"tamewtf/relay/pkg/config"
	"tamewtf/relay/pkg/relay/types"
	"tamewtf/relay/pkg/telemetry/logging"
	"tamewtf/relay/pkg/telemetry/metrics"
	"tamewtf/relay/pkg/upstream"
	"tamewtf/relay/pkg/upstream/lastfm"
)

// Query parameter defaults for the LastFM endpoints.
const (
	// DefaultRecentLimit is the track count for /lastfm/recent.
	DefaultRecentLimit = 1

	// DefaultTopLimit is the track count for /lastfm/top-tracks.
	DefaultTopLimit = 10

	// DefaultTopPeriod is the aggregation period for /lastfm/top-tracks.
	DefaultTopPeriod = "7day"
)

// recentTracksResponse is the /lastfm/recent success payload.
type recentTracksResponse struct {
	Tracks  []lastfm.Track `json:"tracks"`
	Total   int            `json:"total"`
	User    string         `json:"user,omitempty"`
	Success bool           `json:"success,omitempty"`

	// Message is set only on the empty-result payload.
	Message string `json:"message,omitempty"`
}

// topTracksResponse is the /lastfm/top-tracks success payload.
type topTracksResponse struct {
	Tracks  []lastfm.TopTrack `json:"tracks"`
	Total   int               `json:"total"`
	User    string            `json:"user"`
	Period  string            `json:"period"`
	Success bool              `json:"success"`
}

// LastFMHandler serves the /lastfm endpoints. Credentials are read from
// the live configuration on every request, so the handler picks up hot
// reloads and a server booted without credentials starts failing over to
// working once they arrive.
type LastFMHandler struct {
	logger    *logging.Logger
	collector *metrics.Collector

	// newClient builds a client from the current upstream config.
	// Indirected so tests can count constructions if needed.
	newClient func(cfg config.LastFMConfig) *lastfm.Client
}

// NewLastFMHandler creates the handler for the LastFM endpoints.
func NewLastFMHandler(logger *logging.Logger, collector *metrics.Collector) *LastFMHandler {
	return &LastFMHandler{
		logger:    logger,
		collector: collector,
		newClient: func(cfg config.LastFMConfig) *lastfm.Client {
			return lastfm.NewClient(lastfm.ClientConfig{
				BaseURL: cfg.BaseURL,
				Timeout: cfg.Timeout,
			})
		},
	}
}

// checkCredentials validates the per-request credential requirements.
// Returns false after writing the error response.
func (h *LastFMHandler) checkCredentials(w http.ResponseWriter, cfg config.LastFMConfig) bool {
	if cfg.APIKey == "" {
		types.WriteError(w, http.StatusInternalServerError,
			types.NewError("LastFM API key not configured", types.CodeMissingAPIKey))
		return false
	}
	if cfg.Username == "" {
		types.WriteError(w, http.StatusInternalServerError,
			types.NewError("LastFM username not configured", types.CodeMissingUsernameConfig))
		return false
	}
	return true
}

// RecentTracks serves GET /lastfm/recent.
func (h *LastFMHandler) RecentTracks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := config.GetConfig()
	upcfg := cfg.Upstreams.LastFM
	if !h.checkCredentials(w, upcfg) {
		return
	}

	limit := queryInt(r, "limit", DefaultRecentLimit)

	client := h.newClient(upcfg)
	start := time.Now()
	result, err := client.RecentTracks(r.Context(), upcfg.APIKey, upcfg.Username, limit)
	h.observeUpstream(err, time.Since(start))
	if err != nil {
		h.writeError(w, r, err, upcfg.Username, cfg.Development, "Failed to fetch recent tracks")
		return
	}

	if len(result.Tracks) == 0 {
		types.WriteJSON(w, http.StatusOK, &recentTracksResponse{
			Tracks:  []lastfm.Track{},
			Message: "No recent tracks found",
			Total:   0,
		})
		return
	}

	types.WriteJSON(w, http.StatusOK, &recentTracksResponse{
		Tracks:  result.Tracks,
		Total:   result.Total,
		User:    result.User,
		Success: true,
	})
}

// TopTracks serves GET /lastfm/top-tracks.
func (h *LastFMHandler) TopTracks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := config.GetConfig()
	upcfg := cfg.Upstreams.LastFM
	if !h.checkCredentials(w, upcfg) {
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = DefaultTopPeriod
	}
	limit := queryInt(r, "limit", DefaultTopLimit)

	client := h.newClient(upcfg)
	start := time.Now()
	result, err := client.TopTracks(r.Context(), upcfg.APIKey, upcfg.Username, period, limit)
	h.observeUpstream(err, time.Since(start))
	if err != nil {
		h.writeError(w, r, err, upcfg.Username, cfg.Development, "Failed to fetch top tracks")
		return
	}

	tracks := result.Tracks
	if tracks == nil {
		tracks = []lastfm.TopTrack{}
	}

	types.WriteJSON(w, http.StatusOK, &topTracksResponse{
		Tracks:  tracks,
		Total:   result.Total,
		User:    result.User,
		Period:  period,
		Success: true,
	})
}

// writeError maps a client error to the response contract. Structured
// LastFM errors go through the translation table; everything else is a
// generic 500 with details gated on development mode.
func (h *LastFMHandler) writeError(w http.ResponseWriter, r *http.Request, err error, username string, development bool, message string) {
	var apiErr *lastfm.APIError
	if errors.As(err, &apiErr) {
		status, body := lastfm.TranslateError(apiErr.Code, apiErr.Message, username)
		h.logger.Warn("lastfm structured error",
			"code", apiErr.Code, "status", status, "path", r.URL.Path)
		types.WriteJSON(w, status, body)
		return
	}

	h.logger.Error("lastfm request failed", "error", err, "path", r.URL.Path)

	resp := &types.ErrorResponse{Error: message}
	if development {
		resp.Details = err.Error()
	}
	types.WriteError(w, http.StatusInternalServerError, resp)
}

// observeUpstream records the exchange in the metrics collector.
func (h *LastFMHandler) observeUpstream(err error, elapsed time.Duration) {
	if h.collector == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
		var timeoutErr *upstream.TimeoutError
		if errors.As(err, &timeoutErr) {
			status = "timeout"
		}
	}
	h.collector.RecordUpstream("lastfm", status, elapsed)
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
