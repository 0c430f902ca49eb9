package handlers

import (
	"net/http"

	"tamewtf/relay/pkg/relay/types"
)

// Version is the relay version reported by the root banner.
// Overridden at build time via -ldflags.
var Version = "1.0.0"

// bannerResponse is the root endpoint payload.
type bannerResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
}

// endpointDirectory lists the routes the relay serves. Returned with 404
// responses so over-the-wire exploration is self-documenting.
type endpointDirectory struct {
	Root    string            `json:"root"`
	LastFM  map[string]string `json:"lastfm"`
	Discord map[string]string `json:"discord"`
}

// notFoundResponse is the 404 payload: the standard error envelope plus
// the endpoint directory.
type notFoundResponse struct {
	types.ErrorResponse
	AvailableEndpoints endpointDirectory `json:"availableEndpoints"`
}

// RootHandler serves the banner at / and the directory-carrying 404 for
// every unmatched path.
type RootHandler struct{}

// NewRootHandler creates the root and fallback handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// ServeHTTP implements http.Handler. The root mux pattern "/" matches
// every path no other pattern claims, so this handler carries both the
// banner and the 404 directory.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.notFound(w)
		return
	}

	types.WriteJSON(w, http.StatusOK, &bannerResponse{
		Message: "tame.wtf server",
		Version: Version,
		Docs:    "/",
	})
}

// notFound writes the 404 envelope with the endpoint directory.
func (h *RootHandler) notFound(w http.ResponseWriter) {
	types.WriteJSON(w, http.StatusNotFound, &notFoundResponse{
		ErrorResponse: types.ErrorResponse{
			Error: "Endpoint not found",
			Code:  types.CodeNotFound,
		},
		AvailableEndpoints: endpointDirectory{
			Root: "/",
			LastFM: map[string]string{
				"recent":    "/lastfm/recent",
				"topTracks": "/lastfm/top-tracks",
			},
			Discord: map[string]string{
				"profile": "/discord/profile",
			},
		},
	})
}
