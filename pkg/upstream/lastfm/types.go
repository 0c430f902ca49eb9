package lastfm

import (
	"bytes"
	"encoding/json"
)

// textValue coalesces the shapes LastFM uses for artist and album fields:
// a plain string, an object with a "#text" field (recent tracks), or an
// object with a "name" field (top tracks). All decode to a plain string.
type textValue string

// UnmarshalJSON implements json.Unmarshaler.
func (t *textValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = textValue(s)
		return nil
	}

	var obj struct {
		Text string `json:"#text"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Text != "" {
		*t = textValue(obj.Text)
	} else {
		*t = textValue(obj.Name)
	}
	return nil
}

// trackList coalesces the shapes LastFM uses for the track field: absent,
// a single object, or an array of objects. All decode to a slice.
type trackList []rawTrack

// UnmarshalJSON implements json.Unmarshaler.
func (l *trackList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}

	if trimmed[0] == '[' {
		var tracks []rawTrack
		if err := json.Unmarshal(trimmed, &tracks); err != nil {
			return err
		}
		*l = tracks
		return nil
	}

	var single rawTrack
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return err
	}
	*l = trackList{single}
	return nil
}

// rawImage is one entry of LastFM's image array. Entries are ordered by
// resolution tier; selection is positional, matching the upstream contract.
type rawImage struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}

// rawDate carries the unix timestamp of a scrobble.
type rawDate struct {
	UTS string `json:"uts"`
}

// rawTrackAttr carries per-track attributes. NowPlaying arrives as the
// string "true" rather than a boolean; Rank arrives as a numeric string.
type rawTrackAttr struct {
	NowPlaying string `json:"nowplaying"`
	Rank       string `json:"rank"`
}

// rawTrack is a single track as returned by either endpoint.
type rawTrack struct {
	Name      string       `json:"name"`
	Artist    textValue    `json:"artist"`
	Album     *textValue   `json:"album"`
	URL       string       `json:"url"`
	Image     []rawImage   `json:"image"`
	Date      *rawDate     `json:"date"`
	Playcount string       `json:"playcount"`
	Attr      rawTrackAttr `json:"@attr"`
}

// rawListAttr carries list-level attributes. Totals arrive as strings.
type rawListAttr struct {
	User  string `json:"user"`
	Total string `json:"total"`
}

// recentTracksEnvelope is the user.getrecenttracks response. A structured
// error replaces the payload entirely: {"error": 6, "message": "..."}.
type recentTracksEnvelope struct {
	Error   int    `json:"error"`
	Message string `json:"message"`

	RecentTracks *struct {
		Track trackList   `json:"track"`
		Attr  rawListAttr `json:"@attr"`
	} `json:"recenttracks"`
}

// topTracksEnvelope is the user.gettoptracks response.
type topTracksEnvelope struct {
	Error   int    `json:"error"`
	Message string `json:"message"`

	TopTracks *struct {
		Track trackList   `json:"track"`
		Attr  rawListAttr `json:"@attr"`
	} `json:"toptracks"`
}

// Track is the normalized recent-track DTO exposed by the relay.
type Track struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	Album  string `json:"album,omitempty"`
	Image  string `json:"image,omitempty"`
	URL    string `json:"url"`

	// Date is the scrobble time in ISO-8601, null while now playing.
	Date *string `json:"date"`

	NowPlaying bool `json:"nowPlaying"`
}

// TopTrack is the normalized top-track DTO exposed by the relay.
type TopTrack struct {
	Name      string `json:"name"`
	Artist    string `json:"artist"`
	Playcount int    `json:"playcount"`
	URL       string `json:"url"`
	Image     string `json:"image,omitempty"`

	// Rank is null when the upstream omits it or sends a non-numeric value.
	Rank *int `json:"rank"`
}

// RecentTracks is the normalized result of a recent-tracks lookup.
type RecentTracks struct {
	Tracks []Track
	Total  int
	User   string
}

// TopTracks is the normalized result of a top-tracks lookup.
type TopTracks struct {
	Tracks []TopTrack
	Total  int
	User   string
}
