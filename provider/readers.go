package provider

import (
	"context"
	"fmt"

	"bilifm/models"
	"bilifm/stream"
)

// SongsReader builds the lazy member stream for a playlist-shaped
// identifier: pages are fetched one at a time as the host pulls, each raw
// record normalized on the way through. Single-item kinds have no stream.
func (p *Provider) SongsReader(ctx context.Context, identifier string) (*stream.Reader, error) {
	res, err := Classify(identifier)
	if err != nil {
		return nil, err
	}

	switch res.Kind {
	case KindFavoriteFolder:
		return p.favoriteReader(ctx, res)
	case KindSeasonFavorite:
		return p.seasonReader(ctx, res)
	case KindAudioFavorite:
		return p.audioFolderReader(ctx, res, false)
	case KindAudioCollected:
		return p.audioFolderReader(ctx, res, true)
	case KindLater:
		return p.laterReader(ctx)
	case KindHistory:
		return p.historyReader(), nil
	case KindDynamic:
		return p.dynamicReader(), nil
	default:
		return nil, fmt.Errorf("%w: %s is not a playlist", ErrUnsupportedResource, res.Kind)
	}
}

func (p *Provider) favoriteReader(ctx context.Context, res Resource) (*stream.Reader, error) {
	folder, err := p.api.FavFolderInfo(ctx, res.Key)
	if err != nil {
		return nil, err
	}
	fetch := func(ctx context.Context, page int, _ string) (*stream.Page, error) {
		pg, err := p.api.FavResources(ctx, res.Key, page, p.pageSize)
		if err != nil {
			return nil, err
		}
		songs := make([]models.Song, 0, len(pg.Medias))
		for _, media := range pg.Medias {
			songs = append(songs, models.FromFavoriteMedia(media))
		}
		return &stream.Page{Songs: songs}, nil
	}
	return stream.New(fetch, folder.MediaCount, p.pageSize), nil
}

func (p *Provider) seasonReader(ctx context.Context, res Resource) (*stream.Reader, error) {
	// One slim call up front to learn the declared total.
	head, err := p.api.SeasonList(ctx, res.Key, 1, 1)
	if err != nil {
		return nil, err
	}
	fetch := func(ctx context.Context, page int, _ string) (*stream.Page, error) {
		pg, err := p.api.SeasonList(ctx, res.Key, page, p.pageSize)
		if err != nil {
			return nil, err
		}
		songs := make([]models.Song, 0, len(pg.Medias))
		for _, media := range pg.Medias {
			songs = append(songs, models.FromFavoriteMedia(media))
		}
		return &stream.Page{Songs: songs}, nil
	}
	return stream.New(fetch, head.Info.MediaCount, p.pageSize), nil
}

func (p *Provider) audioFolderReader(ctx context.Context, res Resource, collected bool) (*stream.Reader, error) {
	folder, err := p.api.AudioFolderInfo(ctx, res.Key, collected)
	if err != nil {
		return nil, err
	}
	fetch := func(ctx context.Context, page int, _ string) (*stream.Page, error) {
		pg, err := p.api.AudioFolderSongs(ctx, res.Key, collected, page, p.pageSize)
		if err != nil {
			return nil, err
		}
		songs := make([]models.Song, 0, len(pg.Rows))
		for i := range pg.Rows {
			songs = append(songs, models.FromAudioTrack(&pg.Rows[i]))
		}
		return &stream.Page{Songs: songs}, nil
	}

	playlist := models.PlaylistFromAudioFolder(res.ID, folder, collected)
	if playlist.Count == models.CountUnknown {
		// Collected menus declaring zero songs: probe the real total with a
		// zero-size page before the first read.
		probe := func(ctx context.Context) (int, error) {
			pg, err := p.api.AudioFolderSongs(ctx, res.Key, collected, 1, 0)
			if err != nil {
				return 0, err
			}
			return pg.TotalSize, nil
		}
		return stream.NewProbed(fetch, probe, p.pageSize), nil
	}
	return stream.New(fetch, playlist.Count, p.pageSize), nil
}

func (p *Provider) laterReader(ctx context.Context) (*stream.Reader, error) {
	// The later-watch queue arrives whole; pages are served from the one
	// eager response.
	data, err := p.api.ToView(ctx)
	if err != nil {
		return nil, err
	}
	songs := make([]models.Song, 0, len(data.List))
	for i := range data.List {
		song := models.FromVideoInfo(&data.List[i])
		song.Brief = true
		songs = append(songs, song)
	}
	fetch := func(_ context.Context, page int, _ string) (*stream.Page, error) {
		lo := (page - 1) * p.pageSize
		if lo >= len(songs) {
			return &stream.Page{}, nil
		}
		hi := min(lo+p.pageSize, len(songs))
		return &stream.Page{Songs: songs[lo:hi]}, nil
	}
	return stream.New(fetch, data.Count, p.pageSize), nil
}

func (p *Provider) historyReader() *stream.Reader {
	fetch := func(ctx context.Context, page int, _ string) (*stream.Page, error) {
		items, err := p.api.History(ctx, page, p.pageSize)
		if err != nil {
			return nil, err
		}
		songs := make([]models.Song, 0, len(items))
		for _, item := range items {
			songs = append(songs, models.FromHistoryItem(item))
		}
		return &stream.Page{Songs: songs}, nil
	}
	return stream.NewApprox(fetch, placeholderCount, p.pageSize)
}

func (p *Provider) dynamicReader() *stream.Reader {
	fetch := func(ctx context.Context, _ int, cursor string) (*stream.Page, error) {
		pg, err := p.api.DynamicFeed(ctx, cursor)
		if err != nil {
			return nil, err
		}
		songs := make([]models.Song, 0, len(pg.Items))
		for _, item := range pg.Items {
			songs = append(songs, models.FromDynamicItem(item))
		}
		return &stream.Page{Songs: songs, Cursor: pg.Offset, HasMore: pg.HasMore}, nil
	}
	return stream.NewCursor(fetch, placeholderCount, p.pageSize)
}

// ArtistSongsReader streams an uploader's full catalog lazily; the total is
// probed from the first page header.
func (p *Provider) ArtistSongsReader(mid string) *stream.Reader {
	fetch := func(ctx context.Context, page int, _ string) (*stream.Page, error) {
		pg, err := p.api.UserVideos(ctx, mid, page, p.pageSize)
		if err != nil {
			return nil, err
		}
		songs := make([]models.Song, 0, len(pg.List.Vlist))
		for _, video := range pg.List.Vlist {
			songs = append(songs, models.FromUpVideo(video))
		}
		return &stream.Page{Songs: songs}, nil
	}
	probe := func(ctx context.Context) (int, error) {
		pg, err := p.api.UserVideos(ctx, mid, 1, 1)
		if err != nil {
			return 0, err
		}
		return pg.Page.Count, nil
	}
	return stream.NewProbed(fetch, probe, p.pageSize)
}
