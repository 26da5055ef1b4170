package provider

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Resource identifiers are opaque strings multiplexing several backend
// resource kinds. Classify parses one into an explicit tagged Resource once;
// everything downstream switches on the kind instead of re-parsing.
//
// Grammar, matched by prefix before falling back to the bare-video case:
//
//	audio_{trackId}              single music-zone track
//	audio_1_{folderId}           audio favorite folder
//	audio_2_{menuId}             audio collected menu
//	LATER | HISTORY | DYNAMIC    synthetic pseudo-playlists
//	{favType}_{mediaId}          favorite; favType 21 is a seasonal favorite
//	{bvid}                       plain video

type Kind int

const (
	KindVideo Kind = iota
	KindAudioTrack
	KindAudioFavorite
	KindAudioCollected
	KindFavoriteFolder
	KindSeasonFavorite
	KindLater
	KindHistory
	KindDynamic
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudioTrack:
		return "audio_track"
	case KindAudioFavorite:
		return "audio_favorite"
	case KindAudioCollected:
		return "audio_collected"
	case KindFavoriteFolder:
		return "favorite_folder"
	case KindSeasonFavorite:
		return "season_favorite"
	case KindLater:
		return "later"
	case KindHistory:
		return "history"
	case KindDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Resource is a classified identifier: the kind plus the backend key it
// denotes. Key is the track id, folder id, media id or bvid depending on
// kind; the synthetic kinds have no key.
type Resource struct {
	Kind    Kind
	ID      string // the original identifier
	Key     string
	FavType int // favorite kinds only
}

var (
	// ErrMalformedIdentifier reports an identifier that matches no grammar
	// rule: a prefixed form with the wrong number of parts.
	ErrMalformedIdentifier = errors.New("provider: malformed resource identifier")

	// ErrUnsupportedResource reports a well-formed identifier denoting a
	// resource kind this provider has no handling for.
	ErrUnsupportedResource = errors.New("provider: unsupported resource kind")
)

// IsClassificationError reports whether err came from identifier
// classification rather than the backend.
func IsClassificationError(err error) bool {
	return errors.Is(err, ErrMalformedIdentifier) || errors.Is(err, ErrUnsupportedResource)
}

const (
	identLater   = "LATER"
	identHistory = "HISTORY"
	identDynamic = "DYNAMIC"
)

// Classify parses an identifier into a tagged Resource. Pure; never touches
// the backend.
func Classify(identifier string) (Resource, error) {
	if identifier == "" {
		return Resource{}, fmt.Errorf("%w: empty", ErrMalformedIdentifier)
	}

	if strings.HasPrefix(identifier, "audio_") {
		return classifyAudio(identifier)
	}

	switch identifier {
	case identLater:
		return Resource{Kind: KindLater, ID: identifier}, nil
	case identHistory:
		return Resource{Kind: KindHistory, ID: identifier}, nil
	case identDynamic:
		return Resource{Kind: KindDynamic, ID: identifier}, nil
	}

	if strings.ContainsRune(identifier, '_') {
		return classifyFavorite(identifier)
	}

	return Resource{Kind: KindVideo, ID: identifier, Key: identifier}, nil
}

func classifyAudio(identifier string) (Resource, error) {
	parts := strings.Split(identifier, "_")
	switch len(parts) {
	case 2:
		if parts[1] == "" {
			return Resource{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, identifier)
		}
		return Resource{Kind: KindAudioTrack, ID: identifier, Key: parts[1]}, nil
	case 3:
		if parts[2] == "" {
			return Resource{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, identifier)
		}
		switch parts[1] {
		case "1":
			return Resource{Kind: KindAudioFavorite, ID: identifier, Key: parts[2]}, nil
		case "2":
			return Resource{Kind: KindAudioCollected, ID: identifier, Key: parts[2]}, nil
		}
		if _, err := strconv.Atoi(parts[1]); err == nil {
			return Resource{}, fmt.Errorf("%w: audio playlist type %q", ErrUnsupportedResource, parts[1])
		}
		return Resource{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, identifier)
	default:
		return Resource{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, identifier)
	}
}

func classifyFavorite(identifier string) (Resource, error) {
	parts := strings.Split(identifier, "_")
	if len(parts) != 2 || parts[1] == "" {
		return Resource{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, identifier)
	}
	favType, err := strconv.Atoi(parts[0])
	if err != nil {
		return Resource{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, identifier)
	}
	kind := KindFavoriteFolder
	if favType == seasonFavType {
		kind = KindSeasonFavorite
	}
	return Resource{Kind: kind, ID: identifier, Key: parts[1], FavType: favType}, nil
}

// seasonFavType is the favorite-type code marking show-style seasonal
// favorites.
const seasonFavType = 21
