package bilibili

import (
	"context"
	"net/url"
	"strconv"
)

type userCardResponse struct {
	apiError
	Data struct {
		Card UserCard `json:"card"`
	} `json:"data"`
}

// UserCard fetches an uploader's profile card.
func (c *Client) UserCard(ctx context.Context, mid string) (*UserCard, error) {
	params := url.Values{}
	params.Set("mid", mid)
	params.Set("photo", "true")

	var resp userCardResponse
	if err := c.doGET(ctx, c.apiBase, "/x/web-interface/card", params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/x/web-interface/card", resp.apiError); err != nil {
		return nil, err
	}
	return &resp.Data.Card, nil
}

type bestVideosResponse struct {
	apiError
	Data []VideoInfo `json:"data"`
}

// UserBestVideos fetches the uploader's pinned showcase videos, a small
// fixed-size list.
func (c *Client) UserBestVideos(ctx context.Context, mid string) ([]VideoInfo, error) {
	params := url.Values{}
	params.Set("mid", mid)

	var resp bestVideosResponse
	if err := c.doGET(ctx, c.apiBase, "/x/space/masterpiece", params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/x/space/masterpiece", resp.apiError); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type upVideosResponse struct {
	apiError
	Data UpVideoPage `json:"data"`
}

// UserVideos fetches one page of an uploader's full catalog. WBI signed.
func (c *Client) UserVideos(ctx context.Context, mid string, pn, ps int) (*UpVideoPage, error) {
	img, sub, err := c.wbiKeys(ctx)
	if err != nil {
		return nil, err
	}
	params := map[string]string{
		"mid": mid,
		"pn":  strconv.Itoa(pn),
		"ps":  strconv.Itoa(ps),
	}
	signed := signWBI(params, img, sub)

	var resp upVideosResponse
	if err := c.doGET(ctx, c.apiBase, "/x/space/wbi/arc/search", signed, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/x/space/wbi/arc/search", resp.apiError); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
