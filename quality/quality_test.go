package quality

import (
	"errors"
	"testing"
)

func TestSelectAudio(t *testing.T) {
	set := []AudioVariant{
		{Bandwidth: 100000, URL: "u-low"},
		{Bandwidth: 200000, URL: "u-std"},
		{Bandwidth: 300000, URL: "u-high"},
	}

	tests := []struct {
		name     string
		variants []AudioVariant
		tier     AudioTier
		wantURL  string
		wantNil  bool
	}{
		{name: "low picks 100k", variants: set, tier: AudioLow, wantURL: "u-low"},
		{name: "standard picks 200k", variants: set, tier: AudioStandard, wantURL: "u-std"},
		{name: "high picks 300k", variants: set, tier: AudioHigh, wantURL: "u-high"},
		{
			name:     "low with only high variants is nil",
			variants: []AudioVariant{{Bandwidth: 300000, URL: "u-high"}},
			tier:     AudioLow,
			wantNil:  true,
		},
		{
			name:     "boundary 120000 still low",
			variants: []AudioVariant{{Bandwidth: 120000, URL: "u-edge"}, {Bandwidth: 121000, URL: "u-over"}},
			tier:     AudioLow,
			wantURL:  "u-edge",
		},
		{
			name:     "boundary 256000 still standard",
			variants: []AudioVariant{{Bandwidth: 256000, URL: "u-edge"}, {Bandwidth: 257000, URL: "u-over"}},
			tier:     AudioStandard,
			wantURL:  "u-edge",
		},
		{name: "empty set", variants: nil, tier: AudioHigh, wantNil: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectAudio(tt.variants, tt.tier)
			if tt.wantNil {
				if got != nil {
					t.Errorf("SelectAudio() = %+v, want nil", got)
				}
				return
			}
			if got == nil || got.URL != tt.wantURL {
				t.Errorf("SelectAudio() = %+v, want URL %q", got, tt.wantURL)
			}
		})
	}
}

// Requesting a higher tier must never land on a lower bandwidth than a
// lower tier does for the same set.
func TestSelectAudioMonotonic(t *testing.T) {
	set := []AudioVariant{
		{Bandwidth: 96000}, {Bandwidth: 128000}, {Bandwidth: 192000},
		{Bandwidth: 256000}, {Bandwidth: 320000},
	}
	low := SelectAudio(set, AudioLow)
	std := SelectAudio(set, AudioStandard)
	high := SelectAudio(set, AudioHigh)
	if low == nil || std == nil || high == nil {
		t.Fatal("expected a selection at every tier")
	}
	if std.Bandwidth < low.Bandwidth || high.Bandwidth < std.Bandwidth {
		t.Errorf("selection not monotonic: low=%d standard=%d high=%d",
			low.Bandwidth, std.Bandwidth, high.Bandwidth)
	}
}

func TestSelectAudioDeterministic(t *testing.T) {
	set := []AudioVariant{
		{Bandwidth: 300000, URL: "a"},
		{Bandwidth: 100000, URL: "b"},
		{Bandwidth: 200000, URL: "c"},
	}
	first := SelectAudio(set, AudioStandard)
	for i := 0; i < 10; i++ {
		got := SelectAudio(set, AudioStandard)
		if got == nil || got.URL != first.URL {
			t.Fatalf("selection not deterministic: got %+v, want %+v", got, first)
		}
	}
}

func TestSelectVideo(t *testing.T) {
	set := []VideoVariant{
		{Code: Q360, URL: "v360"},
		{Code: Q720, URL: "v720"},
		{Code: Q1080, URL: "v1080"},
	}

	tests := []struct {
		name     string
		variants []VideoVariant
		tier     VideoTier
		wantURL  string
		wantErr  bool
	}{
		{name: "ld caps at 360", variants: set, tier: VideoLD, wantURL: "v360"},
		{name: "sd has no 480 so falls to 360", variants: set, tier: VideoSD, wantURL: "v360"},
		{name: "hd caps at 720", variants: set, tier: VideoHD, wantURL: "v720"},
		{name: "fhd picks 1080", variants: set, tier: VideoFHD, wantURL: "v1080"},
		{
			name:     "all codes above tier",
			variants: []VideoVariant{{Code: Q1080}, {Code: Q4K}},
			tier:     VideoLD,
			wantErr:  true,
		},
		{name: "empty set", variants: nil, tier: VideoFHD, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectVideo(tt.variants, tt.tier)
			if tt.wantErr {
				if !errors.Is(err, ErrNoQualityBelowRequested) {
					t.Errorf("SelectVideo() error = %v, want ErrNoQualityBelowRequested", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectVideo() error = %v", err)
			}
			if got.URL != tt.wantURL {
				t.Errorf("SelectVideo() = %+v, want URL %q", got, tt.wantURL)
			}
		})
	}
}

// Every code a tier claims must be selectable under that tier, so a listed
// tier always yields a locator.
func TestTierOfCodeSelectable(t *testing.T) {
	for _, code := range []VideoCode{Q360, Q480, Q720, Q1080, Q1080P, Q1080P60, Q4K} {
		tier, ok := TierOfCode(code)
		if !ok {
			continue
		}
		if _, err := SelectVideo([]VideoVariant{{Code: code}}, tier); err != nil {
			t.Errorf("code %d maps to tier %s but is not selectable there: %v", code, tier, err)
		}
	}
	if tier, ok := TierOfCode(Q4K); ok {
		t.Errorf("TierOfCode(Q4K) = %s, want no tier (above the fhd ceiling)", tier)
	}
	if tier, ok := TierOfCode(Q1080P60); !ok || tier != VideoFHD {
		t.Errorf("TierOfCode(Q1080P60) = %s, %v, want fhd", tier, ok)
	}
}

func TestTierOfBandwidth(t *testing.T) {
	tests := []struct {
		bandwidth int
		want      AudioTier
	}{
		{64000, AudioLow},
		{120000, AudioLow},
		{120001, AudioStandard},
		{256000, AudioStandard},
		{256001, AudioHigh},
		{320000, AudioHigh},
	}
	for _, tt := range tests {
		if got := TierOfBandwidth(tt.bandwidth); got != tt.want {
			t.Errorf("TierOfBandwidth(%d) = %s, want %s", tt.bandwidth, got, tt.want)
		}
	}
}
