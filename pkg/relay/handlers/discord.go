package handlers

import (
	"errors"
	"net/http"
	"time"

	"tamewtf/relay/pkg/config"
	"tamewtf/relay/pkg/relay/types"
	"tamewtf/relay/pkg/telemetry/logging"
	"tamewtf/relay/pkg/telemetry/metrics"
	"tamewtf/relay/pkg/upstream"
	"tamewtf/relay/pkg/upstream/discord"
)

// DiscordHandler serves /discord/profile. Like the LastFM handler it reads
// credentials from the live configuration per request.
type DiscordHandler struct {
	logger    *logging.Logger
	collector *metrics.Collector

	newClient func(cfg config.DiscordConfig) *discord.Client
}

// NewDiscordHandler creates the handler for the Discord endpoints.
func NewDiscordHandler(logger *logging.Logger, collector *metrics.Collector) *DiscordHandler {
	return &DiscordHandler{
		logger:    logger,
		collector: collector,
		newClient: func(cfg config.DiscordConfig) *discord.Client {
			return discord.NewClient(discord.ClientConfig{
				BaseURL: cfg.BaseURL,
				Timeout: cfg.Timeout,
			})
		},
	}
}

// Profile serves GET /discord/profile.
func (h *DiscordHandler) Profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := config.GetConfig()
	upcfg := cfg.Upstreams.Discord

	if upcfg.BotToken == "" {
		types.WriteError(w, http.StatusInternalServerError,
			types.NewError("Discord bot token not configured", types.CodeMissingDiscordToken))
		return
	}
	if upcfg.UserID == "" {
		types.WriteError(w, http.StatusInternalServerError,
			types.NewError("Discord user ID not configured", types.CodeMissingDiscordUserID))
		return
	}

	client := h.newClient(upcfg)
	start := time.Now()
	profile, err := client.Profile(r.Context(), upcfg.BotToken, upcfg.UserID)
	elapsed := time.Since(start)

	if h.collector != nil {
		status := "ok"
		if err != nil {
			status = "error"
			var timeoutErr *upstream.TimeoutError
			if errors.As(err, &timeoutErr) {
				status = "timeout"
			}
		}
		h.collector.RecordUpstream("discord", status, elapsed)
	}

	if err != nil {
		h.logger.Error("discord profile lookup failed", "error", err)
		resp := &types.ErrorResponse{Error: "Failed to fetch Discord profile"}
		if cfg.Development {
			resp.Details = err.Error()
		}
		types.WriteError(w, http.StatusInternalServerError, resp)
		return
	}

	types.WriteJSON(w, http.StatusOK, profile)
}
