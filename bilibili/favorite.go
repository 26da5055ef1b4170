package bilibili

import (
	"context"
	"net/url"
	"strconv"
)

type favFolderResponse struct {
	apiError
	Data FavFolder `json:"data"`
}

// FavFolderInfo fetches metadata for an ordinary favorite folder.
func (c *Client) FavFolderInfo(ctx context.Context, mediaID string) (*FavFolder, error) {
	params := url.Values{}
	params.Set("media_id", mediaID)

	var resp favFolderResponse
	if err := c.doGET(ctx, c.apiBase, "/x/v3/fav/folder/info", params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/x/v3/fav/folder/info", resp.apiError); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

type favResourceResponse struct {
	apiError
	Data FavResourcePage `json:"data"`
}

// FavResources fetches one page of a favorite folder's contents.
func (c *Client) FavResources(ctx context.Context, mediaID string, pn, ps int) (*FavResourcePage, error) {
	params := url.Values{}
	params.Set("media_id", mediaID)
	params.Set("pn", strconv.Itoa(pn))
	params.Set("ps", strconv.Itoa(ps))
	params.Set("platform", "web")

	var resp favResourceResponse
	if err := c.doGET(ctx, c.apiBase, "/x/v3/fav/resource/list", params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/x/v3/fav/resource/list", resp.apiError); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

type seasonResponse struct {
	apiError
	Data SeasonPage `json:"data"`
}

// SeasonList fetches one page of a seasonal (show-style) favorite.
func (c *Client) SeasonList(ctx context.Context, seasonID string, pn, ps int) (*SeasonPage, error) {
	params := url.Values{}
	params.Set("season_id", seasonID)
	params.Set("pn", strconv.Itoa(pn))
	params.Set("ps", strconv.Itoa(ps))

	var resp seasonResponse
	if err := c.doGET(ctx, c.apiBase, "/x/space/fav/season/list", params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/x/space/fav/season/list", resp.apiError); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

type toViewResponse struct {
	apiError
	Data ToViewData `json:"data"`
}

// ToView fetches the later-watch queue in one call: its count and items.
func (c *Client) ToView(ctx context.Context) (*ToViewData, error) {
	var resp toViewResponse
	if err := c.doGET(ctx, c.apiBase, "/x/v2/history/toview", nil, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/x/v2/history/toview", resp.apiError); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

type historyResponse struct {
	apiError
	Data []HistoryItem `json:"data"`
}

// History fetches one page of the watch history. The endpoint never reports
// a total count.
func (c *Client) History(ctx context.Context, pn, ps int) ([]HistoryItem, error) {
	params := url.Values{}
	params.Set("pn", strconv.Itoa(pn))
	params.Set("ps", strconv.Itoa(ps))

	var resp historyResponse
	if err := c.doGET(ctx, c.apiBase, "/x/v2/history", params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/x/v2/history", resp.apiError); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type dynamicResponse struct {
	apiError
	Data DynamicPage `json:"data"`
}

// DynamicFeed fetches one cursor page of the subscription feed. Pass an
// empty offset for the first page; the response carries the next offset and
// a has_more flag that terminates the walk.
func (c *Client) DynamicFeed(ctx context.Context, offset string) (*DynamicPage, error) {
	params := url.Values{}
	params.Set("type", "video")
	if offset != "" {
		params.Set("offset", offset)
	}

	var resp dynamicResponse
	if err := c.doGET(ctx, c.apiBase, "/x/polymer/web-dynamic/v1/feed/all", params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/x/polymer/web-dynamic/v1/feed/all", resp.apiError); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
