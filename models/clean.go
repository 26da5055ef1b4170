package models

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanTitle strips the <em class="keyword"> highlighting the search
// endpoint wraps around matched terms, plus any HTML entities. Falls back
// to entity unescaping alone if the fragment does not parse.
func CleanTitle(title string) string {
	if !strings.ContainsRune(title, '<') {
		return html.UnescapeString(title)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(title))
	if err != nil {
		return html.UnescapeString(title)
	}
	return html.UnescapeString(doc.Text())
}

// SecondsToMS converts an integer seconds duration to milliseconds.
func SecondsToMS(seconds int) int64 {
	return int64(seconds) * 1000
}

// ParseDurationText converts "MM:SS" or "HH:MM:SS" duration text to
// milliseconds. Malformed text yields zero.
func ParseDurationText(text string) int64 {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}
	var total int64
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + int64(n)
	}
	return total * 1000
}

// FormatDuration renders a millisecond duration as "MM:SS", or "HH:MM:SS"
// once it reaches an hour. Inverse of ParseDurationText for whole seconds.
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
