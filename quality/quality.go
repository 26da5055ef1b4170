package quality

import (
	"errors"
	"sort"
)

// Abstract, backend-agnostic quality tiers requested by the host, and the
// pure selection functions mapping them onto concrete variants. Both
// selectors are deterministic: identical inputs always pick the same variant.

type AudioTier string

const (
	AudioLow      AudioTier = "low"
	AudioStandard AudioTier = "standard"
	AudioHigh     AudioTier = "high"
)

// Bitrate ceilings for the audio tiers, bits per second.
const (
	lowMaxBandwidth      = 120000
	standardMaxBandwidth = 256000
)

// AudioVariant is one encoded audio rendition.
type AudioVariant struct {
	Bandwidth int // bits per second
	URL       string
	Format    string
}

// TierOfBandwidth maps a variant bitrate to the tier it belongs to.
func TierOfBandwidth(bandwidth int) AudioTier {
	switch {
	case bandwidth <= lowMaxBandwidth:
		return AudioLow
	case bandwidth <= standardMaxBandwidth:
		return AudioStandard
	default:
		return AudioHigh
	}
}

// SelectAudio picks the best variant for the requested tier: variants above
// the tier's bitrate ceiling are discarded and the highest-bandwidth
// survivor wins. Nil when nothing survives; a low request against an
// all-high set has no fallback.
func SelectAudio(variants []AudioVariant, tier AudioTier) *AudioVariant {
	if len(variants) == 0 {
		return nil
	}
	sorted := make([]AudioVariant, len(variants))
	copy(sorted, variants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Bandwidth > sorted[j].Bandwidth
	})

	var max int
	switch tier {
	case AudioLow:
		max = lowMaxBandwidth
	case AudioStandard:
		max = standardMaxBandwidth
	default:
		return &sorted[0]
	}
	for i := range sorted {
		if sorted[i].Bandwidth <= max {
			return &sorted[i]
		}
	}
	return nil
}

// VideoCode is a backend coded quality level, ordinal-ordered.
type VideoCode int

const (
	Q360     VideoCode = 16
	Q480     VideoCode = 32
	Q720     VideoCode = 64
	Q1080    VideoCode = 80
	Q1080P   VideoCode = 112
	Q1080P60 VideoCode = 116
	Q4K      VideoCode = 120
)

type VideoTier string

const (
	VideoLD  VideoTier = "ld"
	VideoSD  VideoTier = "sd"
	VideoHD  VideoTier = "hd"
	VideoFHD VideoTier = "fhd"
)

// Highest code each abstract video tier is allowed to select.
var videoTierMax = map[VideoTier]VideoCode{
	VideoLD:  Q360,
	VideoSD:  Q480,
	VideoHD:  Q720,
	VideoFHD: Q1080P60,
}

// TierOfCode maps a coded quality level to the smallest tier that admits
// it. Codes above every tier's ceiling (4K and up) belong to no tier: ok is
// false and the variant must not be advertised, since no request could
// select it.
func TierOfCode(code VideoCode) (VideoTier, bool) {
	switch {
	case code <= Q360:
		return VideoLD, true
	case code <= Q480:
		return VideoSD, true
	case code <= Q720:
		return VideoHD, true
	case code <= videoTierMax[VideoFHD]:
		return VideoFHD, true
	default:
		return "", false
	}
}

// VideoVariant is one encoded video rendition.
type VideoVariant struct {
	Code   VideoCode
	URL    string
	Format string
}

// ErrNoQualityBelowRequested reports that every available code exceeds the
// requested tier's ceiling. Callers treat it as "unavailable", not fatal.
var ErrNoQualityBelowRequested = errors.New("quality: no variant at or below requested tier")

// SelectVideo picks the variant with the highest code not exceeding the
// requested tier's ceiling.
func SelectVideo(variants []VideoVariant, tier VideoTier) (*VideoVariant, error) {
	max, ok := videoTierMax[tier]
	if !ok {
		max = videoTierMax[VideoFHD]
	}
	var best *VideoVariant
	for i := range variants {
		if variants[i].Code > max {
			continue
		}
		if best == nil || variants[i].Code > best.Code {
			best = &variants[i]
		}
	}
	if best == nil {
		return nil, ErrNoQualityBelowRequested
	}
	return best, nil
}
