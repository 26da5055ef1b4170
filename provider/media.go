package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/samber/lo"

	"bilifm/bilibili"
	"bilifm/quality"
)

// maxQN asks the playurl endpoint for every DASH stream up to 8K so the
// descriptor covers the full variant set.
const maxQN = 127

// audioTrackBandwidth stands in for the music zone's single rendition,
// which has no reported bitrate. High tier by the threshold table.
const audioTrackBandwidth = 320000

// MediaLocator is a concrete negotiated playback target.
type MediaLocator struct {
	URL     string
	Format  string
	Bitrate int // bits per second
	Headers map[string]string
}

// playbackHeaders are required by the CDN on every locator this provider
// hands out.
func playbackHeaders() map[string]string {
	return map[string]string{"Referer": "https://www.bilibili.com/"}
}

// variantsFor fetches and memoizes the variant descriptor for an
// identifier. Uses the cached structural key when resolve already saw the
// resource, fetching it first otherwise. The lock is dropped during backend
// calls, so concurrent first requests for one identifier may both fetch;
// the last descriptor written wins, which is harmless for a pure read.
func (p *Provider) variantsFor(ctx context.Context, res Resource) (*variantSet, error) {
	p.mu.Lock()
	if vs, ok := p.variants[res.ID]; ok {
		p.mu.Unlock()
		return vs, nil
	}
	cid, haveCID := p.cids[res.ID]
	p.mu.Unlock()

	var vs *variantSet
	switch res.Kind {
	case KindVideo:
		if !haveCID {
			info, err := p.api.VideoInfo(ctx, res.Key)
			if err != nil {
				return nil, err
			}
			cid = info.CID
		}
		play, err := p.api.PlayURL(ctx, res.Key, cid, maxQN)
		if err != nil {
			return nil, err
		}
		vs = variantsFromPlayData(play)
	case KindAudioTrack:
		audioStream, err := p.api.AudioStream(ctx, res.Key)
		if err != nil {
			return nil, err
		}
		vs = &variantSet{}
		if len(audioStream.CDNs) > 0 {
			vs.audio = []quality.AudioVariant{{
				Bandwidth: audioTrackBandwidth,
				URL:       audioStream.CDNs[0],
				Format:    "m4a",
			}}
		}
	default:
		return nil, fmt.Errorf("%w: %s has no media", ErrUnsupportedResource, res.Kind)
	}

	p.mu.Lock()
	if res.Kind == KindVideo {
		p.cids[res.ID] = cid
	}
	p.variants[res.ID] = vs
	p.mu.Unlock()
	return vs, nil
}

func variantsFromPlayData(play *bilibili.PlayData) *variantSet {
	vs := &variantSet{}
	addAudio := func(s bilibili.DashStream) {
		if s.BaseURL == "" {
			return
		}
		vs.audio = append(vs.audio, quality.AudioVariant{
			Bandwidth: s.Bandwidth,
			URL:       s.BaseURL,
			Format:    formatFromCodecs(s.Codecs),
		})
	}
	for _, s := range play.Dash.Audio {
		addAudio(s)
	}
	if play.Dash.Flac.Audio != nil {
		addAudio(*play.Dash.Flac.Audio)
	}
	for _, s := range play.Dash.Dolby.Audio {
		addAudio(s)
	}
	for _, s := range play.Dash.Video {
		if s.BaseURL == "" {
			continue
		}
		vs.video = append(vs.video, quality.VideoVariant{
			Code:   quality.VideoCode(s.ID),
			URL:    s.BaseURL,
			Format: formatFromCodecs(s.Codecs),
		})
	}
	return vs
}

func formatFromCodecs(codecs string) string {
	codecs = strings.ToLower(codecs)
	switch {
	case strings.Contains(codecs, "flac"):
		return "flac"
	case strings.HasPrefix(codecs, "mp4a"):
		return "m4a"
	case strings.Contains(codecs, "ec-3"):
		return "eac3"
	default:
		return "mp4"
	}
}

// ListQualities returns the distinct set of audio tiers the identifier's
// variants cover. Order carries no meaning. A single audio track is one
// fixed high rendition, so the listing short-circuits without a backend
// call.
func (p *Provider) ListQualities(ctx context.Context, identifier string) ([]quality.AudioTier, error) {
	res, err := Classify(identifier)
	if err != nil {
		return nil, err
	}
	if res.Kind == KindAudioTrack {
		return []quality.AudioTier{quality.AudioHigh}, nil
	}
	vs, err := p.variantsFor(ctx, res)
	if err != nil {
		return nil, err
	}
	tiers := lo.Map(vs.audio, func(v quality.AudioVariant, _ int) quality.AudioTier {
		return quality.TierOfBandwidth(v.Bandwidth)
	})
	return lo.Uniq(tiers), nil
}

// ListVideoQualities returns the distinct set of video tiers covered by the
// identifier's coded quality levels.
func (p *Provider) ListVideoQualities(ctx context.Context, identifier string) ([]quality.VideoTier, error) {
	res, err := Classify(identifier)
	if err != nil {
		return nil, err
	}
	vs, err := p.variantsFor(ctx, res)
	if err != nil {
		return nil, err
	}
	tiers := lo.FilterMap(vs.video, func(v quality.VideoVariant, _ int) (quality.VideoTier, bool) {
		return quality.TierOfCode(v.Code)
	})
	return lo.Uniq(tiers), nil
}

// GetMedia negotiates a playable audio locator at the requested tier. A nil
// locator with nil error means nothing satisfies the tier, an expected
// outcome for low-bitrate requests against high-only variant sets.
func (p *Provider) GetMedia(ctx context.Context, identifier string, tier quality.AudioTier) (*MediaLocator, error) {
	logger := log.WithFields(log.Fields{"module": "provider", "identifier": identifier, "function": "GetMedia"})

	res, err := Classify(identifier)
	if err != nil {
		return nil, err
	}

	span := sentry.StartSpan(ctx, "provider.get_media")
	span.Description = "Negotiate media locator"
	span.SetTag("tier", string(tier))
	defer span.Finish()

	vs, err := p.variantsFor(ctx, res)
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	variant := quality.SelectAudio(vs.audio, tier)
	if variant == nil {
		logger.Debugf("no audio variant at tier %s", tier)
		span.Status = sentry.SpanStatusNotFound
		return nil, nil
	}

	span.Status = sentry.SpanStatusOK
	return &MediaLocator{
		URL:     variant.URL,
		Format:  variant.Format,
		Bitrate: variant.Bandwidth,
		Headers: playbackHeaders(),
	}, nil
}

// GetVideoMedia negotiates a playable video locator at the requested tier.
// Nil locator, nil error when every available code exceeds the tier.
func (p *Provider) GetVideoMedia(ctx context.Context, identifier string, tier quality.VideoTier) (*MediaLocator, error) {
	res, err := Classify(identifier)
	if err != nil {
		return nil, err
	}
	vs, err := p.variantsFor(ctx, res)
	if err != nil {
		return nil, err
	}
	variant, err := quality.SelectVideo(vs.video, tier)
	if errors.Is(err, quality.ErrNoQualityBelowRequested) {
		log.WithFields(log.Fields{"module": "provider", "identifier": identifier}).
			Debugf("no video variant at tier %s", tier)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &MediaLocator{
		URL:     variant.URL,
		Format:  variant.Format,
		Headers: playbackHeaders(),
	}, nil
}
