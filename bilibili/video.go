package bilibili

import (
	"context"
	"net/url"
	"strconv"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

type videoInfoResponse struct {
	apiError
	Data VideoInfo `json:"data"`
}

// VideoInfo fetches the full record for one video by its public code.
func (c *Client) VideoInfo(ctx context.Context, bvid string) (*VideoInfo, error) {
	var resp videoInfoResponse
	params := url.Values{}
	params.Set("bvid", bvid)
	if err := c.doGET(ctx, c.apiBase, "/x/web-interface/view", params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/x/web-interface/view", resp.apiError); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

type playURLResponse struct {
	apiError
	Data PlayData `json:"data"`
}

// PlayURL fetches the DASH variant descriptor for a video. cid is the
// structural key of the content, qn the highest quality code to request.
// The request must be WBI signed.
func (c *Client) PlayURL(ctx context.Context, bvid string, cid int64, qn int) (*PlayData, error) {
	logger := log.WithFields(log.Fields{"module": "bilibili", "bvid": bvid, "function": "PlayURL"})

	span := sentry.StartSpan(ctx, "bilibili.playurl")
	span.Description = "Fetch DASH variants"
	span.SetTag("bvid", bvid)
	defer span.Finish()

	img, sub, err := c.wbiKeys(ctx)
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	params := map[string]string{
		"bvid":  bvid,
		"cid":   strconv.FormatInt(cid, 10),
		"qn":    strconv.Itoa(qn),
		"fnval": "4048", // all available DASH streams
		"fnver": "0",
		"fourk": "1",
	}
	signed := signWBI(params, img, sub)

	var resp playURLResponse
	if err := c.doGET(ctx, c.apiBase, "/x/player/wbi/playurl", signed, &resp); err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}
	if err := checkCode("/x/player/wbi/playurl", resp.apiError); err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	logger.Tracef("got %d video and %d audio variants", len(resp.Data.Dash.Video), len(resp.Data.Dash.Audio))
	span.Status = sentry.SpanStatusOK
	return &resp.Data, nil
}

type searchResponse struct {
	apiError
	Data struct {
		NumResults int           `json:"numResults"`
		Result     []SearchVideo `json:"result"`
	} `json:"data"`
}

// SearchVideos runs a typed video search for a keyword. Returns the result
// rows and the reported total hit count.
func (c *Client) SearchVideos(ctx context.Context, keyword string, page int) ([]SearchVideo, int, error) {
	logger := log.WithFields(log.Fields{"module": "bilibili", "function": "SearchVideos"})

	span := sentry.StartSpan(ctx, "bilibili.search")
	span.Description = "Search videos"
	span.SetTag("keyword", keyword)
	defer span.Finish()

	if page <= 0 {
		page = 1
	}
	params := url.Values{}
	params.Set("search_type", "video")
	params.Set("keyword", keyword)
	params.Set("page", strconv.Itoa(page))

	var resp searchResponse
	if err := c.doGET(ctx, c.apiBase, "/x/web-interface/search/type", params, &resp); err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, 0, err
	}
	if err := checkCode("/x/web-interface/search/type", resp.apiError); err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, 0, err
	}

	logger.Tracef("found %d results for %q", resp.Data.NumResults, keyword)
	span.Status = sentry.SpanStatusOK
	span.SetData("results_count", len(resp.Data.Result))
	return resp.Data.Result, resp.Data.NumResults, nil
}

type rcmdResponse struct {
	apiError
	Data struct {
		Item []RcmdVideo `json:"item"`
	} `json:"data"`
}

// HomeRecommend fetches one refresh of the home feed recommendations.
func (c *Client) HomeRecommend(ctx context.Context, freshIdx int) ([]RcmdVideo, error) {
	params := url.Values{}
	params.Set("fresh_idx", strconv.Itoa(freshIdx))
	params.Set("ps", "12")

	var resp rcmdResponse
	if err := c.doGET(ctx, c.apiBase, "/x/web-interface/index/top/rcmd", params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/x/web-interface/index/top/rcmd", resp.apiError); err != nil {
		return nil, err
	}
	return resp.Data.Item, nil
}
