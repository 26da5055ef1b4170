package models

// Normalized entities handed to the media-library host. Identifiers are the
// provider's opaque resource identifiers, not backend-internal keys.

// CountUnknown marks a playlist whose size the backend did not report. The
// real total is probed before streaming.
const CountUnknown = -1

type ArtistRef struct {
	ID   string
	Name string
}

// Song is a normalized playable item. Durations are always milliseconds.
// Brief songs come from list contexts and carry only identifier, title,
// artist name and duration; a full fetch fills in the rest.
type Song struct {
	ID         string
	Title      string
	DurationMS int64
	Artists    []ArtistRef
	Cover      string
	LyricURL   string
	Lyric      string // resolved lazily, empty until fetched
	Brief      bool
}

// Playlist is a normalized collection. Count may be CountUnknown for one
// audio folder kind until probed, and is only an upper bound for the
// history and subscription pseudo-playlists.
type Playlist struct {
	ID                string
	Name              string
	Creator           *ArtistRef
	Cover             string
	Description       string
	Count             int
	CountIsUpperBound bool
}

type Artist struct {
	ID          string
	Name        string
	Pic         string
	Aliases     []string
	Description string
	HotSongs    []Song
}

type SearchResult struct {
	Query string
	Songs []Song
}
