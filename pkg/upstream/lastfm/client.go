// Package lastfm is the upstream adapter for the LastFM Audioscrobbler API.
package lastfm

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"tamewtf/relay/pkg/upstream"
)

// DefaultBaseURL is the LastFM API endpoint.
const DefaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

// ClientConfig contains configuration for the LastFM client.
type ClientConfig struct {
	// BaseURL overrides the API endpoint (tests point this at a mock).
	BaseURL string

	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// Client calls the LastFM API and normalizes its responses.
type Client struct {
	base    *upstream.Client
	baseURL string
}

// NewClient creates a new LastFM client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		base: upstream.NewClient(upstream.ClientConfig{
			Name:    "lastfm",
			Timeout: cfg.Timeout,
		}),
		baseURL: baseURL,
	}
}

// RecentTracks fetches a user's recently played tracks.
//
// A structured LastFM error envelope is returned as *APIError; transport
// failures and non-2xx responses surface as the base client's typed errors.
func (c *Client) RecentTracks(ctx context.Context, apiKey, user string, limit int) (*RecentTracks, error) {
	query := url.Values{}
	query.Set("method", "user.getrecenttracks")
	query.Set("user", user)
	query.Set("api_key", apiKey)
	query.Set("format", "json")
	query.Set("limit", fmt.Sprintf("%d", limit))

	var env recentTracksEnvelope
	if err := c.base.GetJSON(ctx, c.baseURL+"?"+query.Encode(), nil, &env); err != nil {
		return nil, err
	}
	if env.Error != 0 {
		return nil, &APIError{Code: env.Error, Message: env.Message}
	}

	return normalizeRecent(&env, user), nil
}

// TopTracks fetches a user's most played tracks over a period
// (e.g. "7day", "1month", "overall").
func (c *Client) TopTracks(ctx context.Context, apiKey, user, period string, limit int) (*TopTracks, error) {
	query := url.Values{}
	query.Set("method", "user.gettoptracks")
	query.Set("user", user)
	query.Set("api_key", apiKey)
	query.Set("format", "json")
	query.Set("period", period)
	query.Set("limit", fmt.Sprintf("%d", limit))

	var env topTracksEnvelope
	if err := c.base.GetJSON(ctx, c.baseURL+"?"+query.Encode(), nil, &env); err != nil {
		return nil, err
	}
	if env.Error != 0 {
		return nil, &APIError{Code: env.Error, Message: env.Message}
	}

	return normalizeTop(&env, user), nil
}
