package bilibili

import (
	"context"
	"net/url"
	"strconv"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

// Music-zone ("audio") endpoints live under the www host rather than the
// api host and use their own envelope, same code/message semantics.

type audioInfoResponse struct {
	apiError
	Data AudioTrack `json:"data"`
}

// AudioInfo fetches a single music-zone track by its song id.
func (c *Client) AudioInfo(ctx context.Context, sid string) (*AudioTrack, error) {
	params := url.Values{}
	params.Set("sid", sid)

	var resp audioInfoResponse
	if err := c.doGET(ctx, c.wwwBase, "/audio/music-service-c/web/song/info", params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("song/info", resp.apiError); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

type audioStreamResponse struct {
	apiError
	Data AudioStream `json:"data"`
}

// AudioStream fetches the CDN mirror list for a track's single rendition.
func (c *Client) AudioStream(ctx context.Context, sid string) (*AudioStream, error) {
	logger := log.WithFields(log.Fields{"module": "bilibili", "sid": sid, "function": "AudioStream"})

	span := sentry.StartSpan(ctx, "bilibili.audio_stream")
	span.Description = "Fetch audio CDN mirrors"
	span.SetTag("sid", sid)
	defer span.Finish()

	params := url.Values{}
	params.Set("sid", sid)
	params.Set("privilege", "2")
	params.Set("quality", "2")

	var resp audioStreamResponse
	if err := c.doGET(ctx, c.wwwBase, "/audio/music-service-c/web/url", params, &resp); err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}
	if err := checkCode("song/url", resp.apiError); err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	logger.Tracef("track has %d cdn mirrors", len(resp.Data.CDNs))
	span.Status = sentry.SpanStatusOK
	return &resp.Data, nil
}

type audioFolderResponse struct {
	apiError
	Data AudioFolder `json:"data"`
}

// AudioFolderInfo fetches metadata for an audio favorite folder, or for a
// collected menu when collected is true.
func (c *Client) AudioFolderInfo(ctx context.Context, sid string, collected bool) (*AudioFolder, error) {
	apiPath := "/audio/music-service-c/web/menu/info"
	if collected {
		apiPath = "/audio/music-service-c/web/collections/info"
	}
	params := url.Values{}
	params.Set("sid", sid)

	var resp audioFolderResponse
	if err := c.doGET(ctx, c.wwwBase, apiPath, params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode(apiPath, resp.apiError); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

type audioSongPageResponse struct {
	apiError
	Data AudioSongPage `json:"data"`
}

// AudioFolderSongs fetches one page of an audio folder listing. A zero page
// size is a metadata probe: no rows come back but TotalSize is authoritative.
func (c *Client) AudioFolderSongs(ctx context.Context, sid string, collected bool, pn, ps int) (*AudioSongPage, error) {
	apiPath := "/audio/music-service-c/web/song/of-menu"
	if collected {
		apiPath = "/audio/music-service-c/web/song/of-coll"
	}
	params := url.Values{}
	params.Set("sid", sid)
	params.Set("pn", strconv.Itoa(pn))
	params.Set("ps", strconv.Itoa(ps))

	var resp audioSongPageResponse
	if err := c.doGET(ctx, c.wwwBase, apiPath, params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode(apiPath, resp.apiError); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
