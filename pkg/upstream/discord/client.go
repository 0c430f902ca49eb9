// Package discord is the upstream adapter for the Discord REST API.
package discord

import (
	"context"
	"time"

	"tamewtf/relay/pkg/upstream"
)

// DefaultBaseURL is the Discord API endpoint.
const DefaultBaseURL = "https://discord.com/api/v10"

// ClientConfig contains configuration for the Discord client.
type ClientConfig struct {
	// BaseURL overrides the API endpoint (tests point this at a mock).
	BaseURL string

	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// Client calls the Discord API with bot authorization.
type Client struct {
	base    *upstream.Client
	baseURL string
}

// NewClient creates a new Discord client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		base: upstream.NewClient(upstream.ClientConfig{
			Name:    "discord",
			Timeout: cfg.Timeout,
		}),
		baseURL: baseURL,
	}
}

// Profile looks up a user by id and projects it onto the relay's profile
// contract. Non-2xx responses surface as *upstream.Error; the relay treats
// Discord statuses as opaque.
func (c *Client) Profile(ctx context.Context, botToken, userID string) (*Profile, error) {
	headers := map[string]string{
		"Authorization": "Bot " + botToken,
		"Content-Type":  "application/json",
	}

	var user rawUser
	if err := c.base.GetJSON(ctx, c.baseURL+"/users/"+userID, headers, &user); err != nil {
		return nil, err
	}

	return newProfile(&user), nil
}
