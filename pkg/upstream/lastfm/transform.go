package lastfm

import (
	"strconv"
	"time"
)

// normalizeRecent reshapes the raw recent-tracks payload into the relay's
// stable contract. fallbackUser is reported when the upstream omits the
// list attributes.
func normalizeRecent(env *recentTracksEnvelope, fallbackUser string) *RecentTracks {
	result := &RecentTracks{
		Tracks: []Track{},
		User:   fallbackUser,
	}
	if env.RecentTracks == nil {
		return result
	}

	for _, raw := range env.RecentTracks.Track {
		track := Track{
			Name:       raw.Name,
			Artist:     string(raw.Artist),
			Image:      imageURL(raw.Image),
			URL:        raw.URL,
			Date:       scrobbleDate(raw.Date),
			NowPlaying: raw.Attr.NowPlaying == "true",
		}
		if raw.Album != nil {
			track.Album = string(*raw.Album)
		}
		result.Tracks = append(result.Tracks, track)
	}

	result.Total = parseTotal(env.RecentTracks.Attr.Total, len(result.Tracks))
	if env.RecentTracks.Attr.User != "" {
		result.User = env.RecentTracks.Attr.User
	}

	return result
}

// normalizeTop reshapes the raw top-tracks payload.
func normalizeTop(env *topTracksEnvelope, fallbackUser string) *TopTracks {
	result := &TopTracks{
		Tracks: []TopTrack{},
		User:   fallbackUser,
	}
	if env.TopTracks == nil {
		return result
	}

	for _, raw := range env.TopTracks.Track {
		playcount, _ := strconv.Atoi(raw.Playcount)
		result.Tracks = append(result.Tracks, TopTrack{
			Name:      raw.Name,
			Artist:    string(raw.Artist),
			Playcount: playcount,
			URL:       raw.URL,
			Image:     imageURL(raw.Image),
			Rank:      parseRank(raw.Attr.Rank),
		})
	}

	result.Total = parseTotal(env.TopTracks.Attr.Total, len(result.Tracks))
	if env.TopTracks.Attr.User != "" {
		result.User = env.TopTracks.Attr.User
	}

	return result
}

// imageURL selects the medium-resolution entry, falling back to the small
// one. Selection is positional; entries with empty URLs are skipped.
func imageURL(images []rawImage) string {
	if len(images) > 2 && images[2].URL != "" {
		return images[2].URL
	}
	if len(images) > 1 && images[1].URL != "" {
		return images[1].URL
	}
	return ""
}

// scrobbleDate converts a unix-seconds string to ISO-8601.
// Returns nil for tracks without a date (now playing) or unparsable values.
func scrobbleDate(date *rawDate) *string {
	if date == nil {
		return nil
	}
	uts, err := strconv.ParseInt(date.UTS, 10, 64)
	if err != nil {
		return nil
	}
	iso := time.Unix(uts, 0).UTC().Format(time.RFC3339)
	return &iso
}

// parseRank parses a chart rank, returning nil when absent or non-numeric.
func parseRank(s string) *int {
	rank, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &rank
}

// parseTotal parses a list total, falling back to the page length.
func parseTotal(s string, fallback int) int {
	total, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return total
}
