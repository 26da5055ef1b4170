package provider

import (
	"context"
	"fmt"
	"sync"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"bilifm/bilibili"
	"bilifm/lyrics"
	"bilifm/models"
	"bilifm/quality"
)

// Transport is the backend boundary the provider drives. *bilibili.Client
// implements it; tests substitute fakes. Every call is a pure read against
// the backend.
type Transport interface {
	VideoInfo(ctx context.Context, bvid string) (*bilibili.VideoInfo, error)
	PlayURL(ctx context.Context, bvid string, cid int64, qn int) (*bilibili.PlayData, error)
	SearchVideos(ctx context.Context, keyword string, page int) ([]bilibili.SearchVideo, int, error)
	HomeRecommend(ctx context.Context, freshIdx int) ([]bilibili.RcmdVideo, error)

	AudioInfo(ctx context.Context, sid string) (*bilibili.AudioTrack, error)
	AudioStream(ctx context.Context, sid string) (*bilibili.AudioStream, error)
	AudioFolderInfo(ctx context.Context, sid string, collected bool) (*bilibili.AudioFolder, error)
	AudioFolderSongs(ctx context.Context, sid string, collected bool, pn, ps int) (*bilibili.AudioSongPage, error)

	FavFolderInfo(ctx context.Context, mediaID string) (*bilibili.FavFolder, error)
	FavResources(ctx context.Context, mediaID string, pn, ps int) (*bilibili.FavResourcePage, error)
	SeasonList(ctx context.Context, seasonID string, pn, ps int) (*bilibili.SeasonPage, error)
	ToView(ctx context.Context) (*bilibili.ToViewData, error)
	History(ctx context.Context, pn, ps int) ([]bilibili.HistoryItem, error)
	DynamicFeed(ctx context.Context, offset string) (*bilibili.DynamicPage, error)

	UserCard(ctx context.Context, mid string) (*bilibili.UserCard, error)
	UserBestVideos(ctx context.Context, mid string) ([]bilibili.VideoInfo, error)
	UserVideos(ctx context.Context, mid string, pn, ps int) (*bilibili.UpVideoPage, error)

	FetchText(ctx context.Context, url string) (string, error)
}

// variantSet is a memoized variant descriptor for one identifier.
type variantSet struct {
	audio []quality.AudioVariant
	video []quality.VideoVariant
}

// Provider is one session against the backend. It classifies identifiers,
// drives the right fetch calls and composes the normalizer, the paginated
// reader and the quality negotiator.
//
// The two memo maps hold per-session state keyed by identifier: the
// structural key needed for variant requests and the fetched variant
// descriptor. They live exactly as long as the Provider and are guarded by
// mu, so concurrent request handlers can share one session. Readers stay
// single-consumer; see stream.Reader.
type Provider struct {
	api          Transport
	pageSize     int
	hotSongLimit int

	mu       sync.Mutex
	cids     map[string]int64
	variants map[string]*variantSet
}

// New builds a provider session over the given transport.
func New(api Transport, pageSize, hotSongLimit int) *Provider {
	if pageSize <= 0 {
		pageSize = 20
	}
	if hotSongLimit <= 0 {
		hotSongLimit = 10
	}
	return &Provider{
		api:          api,
		pageSize:     pageSize,
		hotSongLimit: hotSongLimit,
		cids:         make(map[string]int64),
		variants:     make(map[string]*variantSet),
	}
}

// Resolved is the outcome of resolving an identifier: exactly one field is
// set, or none for the defined non-resolvable case (an audio track has no
// playlist meaning).
type Resolved struct {
	Song     *models.Song
	Playlist *models.Playlist
}

// Resolve classifies the identifier and fetches the normalized entity it
// denotes. Video and audio paths cache the resource's structural key for
// later quality negotiation.
func (p *Provider) Resolve(ctx context.Context, identifier string) (*Resolved, error) {
	logger := log.WithFields(log.Fields{"module": "provider", "identifier": identifier, "function": "Resolve"})

	res, err := Classify(identifier)
	if err != nil {
		return nil, err
	}

	span := sentry.StartSpan(ctx, "provider.resolve")
	span.Description = "Resolve resource"
	span.SetTag("kind", res.Kind.String())
	defer span.Finish()

	var out *Resolved
	switch res.Kind {
	case KindVideo:
		song, err := p.resolveVideo(ctx, res)
		if err != nil {
			sentry.CaptureException(err)
			span.Status = sentry.SpanStatusInternalError
			return nil, err
		}
		out = &Resolved{Song: song}
	case KindAudioTrack:
		song, err := p.resolveAudioTrack(ctx, res)
		if err != nil {
			sentry.CaptureException(err)
			span.Status = sentry.SpanStatusInternalError
			return nil, err
		}
		out = &Resolved{Song: song}
	default:
		playlist, err := p.resolvePlaylist(ctx, res)
		if err != nil {
			sentry.CaptureException(err)
			span.Status = sentry.SpanStatusInternalError
			return nil, err
		}
		out = &Resolved{Playlist: playlist}
	}

	logger.Tracef("resolved as %s", res.Kind)
	span.Status = sentry.SpanStatusOK
	return out, nil
}

func (p *Provider) resolveVideo(ctx context.Context, res Resource) (*models.Song, error) {
	info, err := p.api.VideoInfo(ctx, res.Key)
	if err != nil {
		return nil, err
	}
	// Remember the content id so quality negotiation skips the info refetch.
	p.mu.Lock()
	p.cids[res.ID] = info.CID
	p.mu.Unlock()
	song := models.FromVideoInfo(info)
	return &song, nil
}

func (p *Provider) resolveAudioTrack(ctx context.Context, res Resource) (*models.Song, error) {
	track, err := p.api.AudioInfo(ctx, res.Key)
	if err != nil {
		return nil, err
	}
	song := models.FromAudioTrack(track)
	return &song, nil
}

func (p *Provider) resolvePlaylist(ctx context.Context, res Resource) (*models.Playlist, error) {
	switch res.Kind {
	case KindAudioFavorite, KindAudioCollected:
		collected := res.Kind == KindAudioCollected
		folder, err := p.api.AudioFolderInfo(ctx, res.Key, collected)
		if err != nil {
			return nil, err
		}
		playlist := models.PlaylistFromAudioFolder(res.ID, folder, collected)
		return &playlist, nil
	case KindFavoriteFolder:
		folder, err := p.api.FavFolderInfo(ctx, res.Key)
		if err != nil {
			return nil, err
		}
		playlist := models.PlaylistFromFavFolder(res.ID, folder)
		return &playlist, nil
	case KindSeasonFavorite:
		page, err := p.api.SeasonList(ctx, res.Key, 1, p.pageSize)
		if err != nil {
			return nil, err
		}
		playlist := models.PlaylistFromSeason(res.ID, page)
		return &playlist, nil
	case KindLater, KindHistory, KindDynamic:
		return p.resolveSynthetic(ctx, res)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedResource, res.Kind)
	}
}

// ResolveArtist fetches an uploader as a normalized artist, hot songs
// attached. Artists are addressed by their numeric uploader id, outside the
// identifier grammar.
func (p *Provider) ResolveArtist(ctx context.Context, mid string) (*models.Artist, error) {
	card, err := p.api.UserCard(ctx, mid)
	if err != nil {
		return nil, err
	}
	hot, err := p.HotSongs(ctx, mid)
	if err != nil {
		// The showcase is decoration; the artist is still resolvable.
		log.WithFields(log.Fields{"module": "provider", "mid": mid}).
			Warnf("hot songs unavailable: %v", err)
		hot = nil
	}
	artist := models.ArtistFromCard(card, hot)
	return &artist, nil
}

// HotSongs returns the uploader's bounded showcase list.
func (p *Provider) HotSongs(ctx context.Context, mid string) ([]models.Song, error) {
	best, err := p.api.UserBestVideos(ctx, mid)
	if err != nil {
		return nil, err
	}
	if len(best) > p.hotSongLimit {
		best = best[:p.hotSongLimit]
	}
	songs := make([]models.Song, 0, len(best))
	for _, info := range best {
		songs = append(songs, models.FromBestVideo(info))
	}
	return songs, nil
}

// SongLyric lazily resolves a song's lyric payload. Songs without a lyric
// URL have no lyric; that is empty text, not a failure.
func (p *Provider) SongLyric(ctx context.Context, song *models.Song) (string, error) {
	return lyrics.Resolve(ctx, p.api, song.LyricURL)
}

// Search runs a keyword search and normalizes the hits.
func (p *Provider) Search(ctx context.Context, keyword string) (*models.SearchResult, error) {
	results, total, err := p.api.SearchVideos(ctx, keyword, 1)
	if err != nil {
		return nil, err
	}
	songs := make([]models.Song, 0, len(results))
	for _, r := range results {
		songs = append(songs, models.FromSearchVideo(r))
	}
	log.WithFields(log.Fields{"module": "provider", "function": "Search"}).
		Tracef("%d of %d results for %q", len(songs), total, keyword)
	return &models.SearchResult{Query: keyword, Songs: songs}, nil
}

// HomeRecommendations fetches one refresh of the normalized home feed.
func (p *Provider) HomeRecommendations(ctx context.Context, freshIdx int) ([]models.Song, error) {
	items, err := p.api.HomeRecommend(ctx, freshIdx)
	if err != nil {
		return nil, err
	}
	songs := make([]models.Song, 0, len(items))
	for _, item := range items {
		songs = append(songs, models.FromRcmdVideo(item))
	}
	return songs, nil
}
