package bilibili

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"

	"bilifm/config"
)

const (
	defaultAPIBase   = "https://api.bilibili.com"
	defaultWWWBase   = "https://www.bilibili.com"
	defaultReferer   = "https://www.bilibili.com/"
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client talks to the Bilibili web API. All reads are plain GETs carrying the
// session cookie, a browser User-Agent and the www Referer; responses use the
// common code/message/data envelope.
type Client struct {
	httpClient *http.Client
	cookie     string
	apiBase    string
	wwwBase    string

	wbiImg string
	wbiSub string
}

// NewClient builds a client from the loaded config.
func NewClient() *Client {
	timeout := config.Config.Bilibili.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cookie:     config.Config.Bilibili.Cookie,
		apiBase:    defaultAPIBase,
		wwwBase:    defaultWWWBase,
	}
}

// NewClientWithBase builds a client against a custom base URL. Test seam.
func NewClientWithBase(base, cookie string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient: hc,
		cookie:     cookie,
		apiBase:    base,
		wwwBase:    base,
	}
}

func (c *Client) doGET(ctx context.Context, base, apiPath string, params url.Values, out any) error {
	endpoint := base + apiPath
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Referer", defaultReferer)
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bilibili request failed: %s: %w", apiPath, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("bilibili read failed: %s: %w", apiPath, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("http %d from bilibili api: %s", resp.StatusCode, apiPath)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid bilibili response from %s: %w", apiPath, err)
	}
	return nil
}

func checkCode(apiPath string, e apiError) error {
	if e.Code != 0 {
		return fmt.Errorf("bilibili api error: %s code=%d message=%s", apiPath, e.Code, e.Message)
	}
	return nil
}

// FetchText retrieves a plain text payload from an absolute URL, used for
// externally hosted lyric files.
func (c *Client) FetchText(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Referer", defaultReferer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("text fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http %d fetching %s", resp.StatusCode, rawURL)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	log.Tracef("fetched %d bytes of text from %s", len(body), rawURL)
	return string(body), nil
}
