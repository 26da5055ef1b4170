package provider

import (
	"context"

	"bilifm/models"
)

// placeholderCount bounds the page loop for the history and subscription
// pseudo-playlists. Neither endpoint reports a real total, so this is a
// documented approximation surfaced through TotalIsUpperBound, never an
// authoritative count.
const placeholderCount = 1000

const (
	laterName   = "稍后再看"
	historyName = "历史记录"
	dynamicName = "动态"
)

// SyntheticPlaylists enumerates the pseudo-playlists that exist without any
// backend folder id. Pure; counts here are placeholders until resolved.
func SyntheticPlaylists() []models.Playlist {
	return []models.Playlist{
		{ID: identLater, Name: laterName, Count: models.CountUnknown},
		{ID: identHistory, Name: historyName, Count: placeholderCount, CountIsUpperBound: true},
		{ID: identDynamic, Name: dynamicName, Count: placeholderCount, CountIsUpperBound: true},
	}
}

func (p *Provider) resolveSynthetic(ctx context.Context, res Resource) (*models.Playlist, error) {
	switch res.Kind {
	case KindLater:
		// The queue is small; one call learns the real count.
		data, err := p.api.ToView(ctx)
		if err != nil {
			return nil, err
		}
		return &models.Playlist{ID: res.ID, Name: laterName, Count: data.Count}, nil
	case KindHistory:
		return &models.Playlist{
			ID: res.ID, Name: historyName,
			Count: placeholderCount, CountIsUpperBound: true,
		}, nil
	default:
		return &models.Playlist{
			ID: res.ID, Name: dynamicName,
			Count: placeholderCount, CountIsUpperBound: true,
		}, nil
	}
}
