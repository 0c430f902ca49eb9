package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tamewtf/relay/pkg/config"
)

// discordConfig builds a config pointing the Discord upstream at baseURL
// with credentials set.
func discordConfig(baseURL string) *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Upstreams.Discord.BaseURL = baseURL
	cfg.Upstreams.Discord.BotToken = "test-token"
	cfg.Upstreams.Discord.UserID = "123456789"
	return cfg
}

func TestProfile_Success(t *testing.T) {
	var gotPath, gotAuth string
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{
			"id": "123456789",
			"username": "tame",
			"discriminator": "0",
			"avatar": "abc123",
			"global_name": "tame"
		}`))
	}))
	defer mock.Close()

	installConfig(t, discordConfig(mock.URL))
	handler := NewDiscordHandler(testLogger(t), nil)

	rec := httptest.NewRecorder()
	handler.Profile(rec, httptest.NewRequest(http.MethodGet, "/discord/profile", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if gotPath != "/users/123456789" {
		t.Errorf("upstream path = %q", gotPath)
	}
	if gotAuth != "Bot test-token" {
		t.Errorf("authorization = %q", gotAuth)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["username"] != "tame" {
		t.Errorf("username = %v", resp["username"])
	}
	want := "https://cdn.discordapp.com/avatars/123456789/abc123.png?size=256"
	if resp["avatarUrl"] != want {
		t.Errorf("avatarUrl = %v, want %v", resp["avatarUrl"], want)
	}
}

func TestProfile_AnimatedAvatarUsesGif(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "123456789", "username": "tame", "discriminator": "0", "avatar": "a_xyz", "global_name": null}`))
	}))
	defer mock.Close()

	installConfig(t, discordConfig(mock.URL))
	handler := NewDiscordHandler(testLogger(t), nil)

	rec := httptest.NewRecorder()
	handler.Profile(rec, httptest.NewRequest(http.MethodGet, "/discord/profile", nil))

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	want := "https://cdn.discordapp.com/avatars/123456789/a_xyz.gif?size=256"
	if resp["avatarUrl"] != want {
		t.Errorf("avatarUrl = %v, want %v", resp["avatarUrl"], want)
	}
}

func TestProfile_NoAvatar(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "123456789", "username": "tame", "discriminator": "0", "avatar": null, "global_name": "tame"}`))
	}))
	defer mock.Close()

	installConfig(t, discordConfig(mock.URL))
	handler := NewDiscordHandler(testLogger(t), nil)

	rec := httptest.NewRecorder()
	handler.Profile(rec, httptest.NewRequest(http.MethodGet, "/discord/profile", nil))

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["avatarUrl"] != nil {
		t.Errorf("avatarUrl = %v, want null", resp["avatarUrl"])
	}
	if resp["avatar"] != nil {
		t.Errorf("avatar = %v, want null", resp["avatar"])
	}
}

func TestProfile_MissingToken(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Upstreams.Discord.UserID = "123456789"
	installConfig(t, cfg)
	handler := NewDiscordHandler(testLogger(t), nil)

	rec := httptest.NewRecorder()
	handler.Profile(rec, httptest.NewRequest(http.MethodGet, "/discord/profile", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["code"] != "MISSING_DISCORD_TOKEN" {
		t.Errorf("code = %v", resp["code"])
	}
}

func TestProfile_MissingUserID(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Upstreams.Discord.BotToken = "test-token"
	installConfig(t, cfg)
	handler := NewDiscordHandler(testLogger(t), nil)

	rec := httptest.NewRecorder()
	handler.Profile(rec, httptest.NewRequest(http.MethodGet, "/discord/profile", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["code"] != "MISSING_DISCORD_USER_ID" {
		t.Errorf("code = %v", resp["code"])
	}
}

func TestProfile_UpstreamFailure(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer mock.Close()

	cfg := discordConfig(mock.URL)
	cfg.Development = false
	installConfig(t, cfg)
	handler := NewDiscordHandler(testLogger(t), nil)

	rec := httptest.NewRecorder()
	handler.Profile(rec, httptest.NewRequest(http.MethodGet, "/discord/profile", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "Failed to fetch Discord profile" {
		t.Errorf("error = %v", resp["error"])
	}
	if _, present := resp["details"]; present {
		t.Error("details should be omitted outside development mode")
	}
}

func TestProfile_MethodNotAllowed(t *testing.T) {
	installConfig(t, discordConfig("http://unused.invalid"))
	handler := NewDiscordHandler(testLogger(t), nil)

	rec := httptest.NewRecorder()
	handler.Profile(rec, httptest.NewRequest(http.MethodDelete, "/discord/profile", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
