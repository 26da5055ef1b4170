package lyrics

import (
	"context"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Fetcher retrieves a text payload from an absolute URL. *bilibili.Client
// satisfies it.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

var lrcTimestamp = regexp.MustCompile(`\[\d+:\d+(?:\.\d+)?\]`)

// Resolve fetches a track's lyric payload. A missing lyric URL means the
// track simply has no lyric and yields empty text, not an error; a failed
// fetch propagates.
func Resolve(ctx context.Context, f Fetcher, lyricURL string) (string, error) {
	if lyricURL == "" {
		return "", nil
	}
	text, err := f.FetchText(ctx, lyricURL)
	if err != nil {
		return "", err
	}
	log.Tracef("resolved %d bytes of lyric", len(text))
	return text, nil
}

// Plain strips LRC timestamp tags from a lyric payload, leaving display text.
func Plain(lrc string) string {
	return strings.TrimSpace(lrcTimestamp.ReplaceAllString(lrc, ""))
}
