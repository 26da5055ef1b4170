package models

import (
	"strconv"

	"bilifm/bilibili"
)

// One conversion rule per raw backend record shape. All rules are pure and
// total: a well-formed record always normalizes, missing optional fields
// degrade to empty values.

// FromVideoInfo normalizes a full video record.
func FromVideoInfo(info *bilibili.VideoInfo) Song {
	return Song{
		ID:         info.BVID,
		Title:      CleanTitle(info.Title),
		DurationMS: SecondsToMS(info.Duration),
		Artists: []ArtistRef{{
			ID:   strconv.FormatInt(info.Owner.Mid, 10),
			Name: info.Owner.Name,
		}},
		Cover: info.Pic,
	}
}

// FromSearchVideo normalizes one typed-search result row. Search titles
// carry keyword highlighting markup and duration as clock text.
func FromSearchVideo(result bilibili.SearchVideo) Song {
	return Song{
		ID:         result.BVID,
		Title:      CleanTitle(result.Title),
		DurationMS: ParseDurationText(result.Duration),
		Artists: []ArtistRef{{
			ID:   strconv.FormatInt(result.Mid, 10),
			Name: result.Author,
		}},
		Cover: result.Pic,
	}
}

// FromAudioTrack normalizes a music-zone track record.
func FromAudioTrack(track *bilibili.AudioTrack) Song {
	name := track.Uname
	if name == "" {
		name = track.Author
	}
	return Song{
		ID:         "audio_" + strconv.FormatInt(track.ID, 10),
		Title:      track.Title,
		DurationMS: SecondsToMS(track.Duration),
		Artists: []ArtistRef{{
			ID:   strconv.FormatInt(track.UID, 10),
			Name: name,
		}},
		Cover:    track.Cover,
		LyricURL: track.Lyric,
	}
}

// FromFavoriteMedia normalizes one favorite-folder listing row to a brief song.
func FromFavoriteMedia(media bilibili.FavoriteMedia) Song {
	return Song{
		ID:         media.BVID,
		Title:      CleanTitle(media.Title),
		DurationMS: SecondsToMS(media.Duration),
		Artists: []ArtistRef{{
			ID:   strconv.FormatInt(media.Upper.Mid, 10),
			Name: media.Upper.Name,
		}},
		Cover: media.Cover,
		Brief: true,
	}
}

// FromHistoryItem normalizes one watch-history row to a brief song.
func FromHistoryItem(item bilibili.HistoryItem) Song {
	return Song{
		ID:         item.History.BVID,
		Title:      CleanTitle(item.Title),
		DurationMS: SecondsToMS(item.Duration),
		Artists: []ArtistRef{{
			ID:   strconv.FormatInt(item.AuthorMid, 10),
			Name: item.AuthorName,
		}},
		Cover: item.Cover,
		Brief: true,
	}
}

// FromDynamicItem normalizes one subscription-feed entry to a brief song.
func FromDynamicItem(item bilibili.DynamicItem) Song {
	archive := item.Modules.Dynamic.Major.Archive
	return Song{
		ID:         archive.BVID,
		Title:      CleanTitle(archive.Title),
		DurationMS: ParseDurationText(archive.DurationText),
		Artists: []ArtistRef{{
			ID:   strconv.FormatInt(item.Modules.Author.Mid, 10),
			Name: item.Modules.Author.Name,
		}},
		Cover: archive.Cover,
		Brief: true,
	}
}

// FromRcmdVideo normalizes one home-feed recommendation entry.
func FromRcmdVideo(video bilibili.RcmdVideo) Song {
	return Song{
		ID:         video.BVID,
		Title:      CleanTitle(video.Title),
		DurationMS: SecondsToMS(video.Duration),
		Artists: []ArtistRef{{
			ID:   strconv.FormatInt(video.Owner.Mid, 10),
			Name: video.Owner.Name,
		}},
		Cover: video.Pic,
		Brief: true,
	}
}

// FromBestVideo normalizes one showcase (best-video) record for the hot list.
func FromBestVideo(info bilibili.VideoInfo) Song {
	song := FromVideoInfo(&info)
	song.Brief = true
	return song
}

// FromUpVideo normalizes one uploader-catalog row to a brief song.
func FromUpVideo(video bilibili.UpVideo) Song {
	return Song{
		ID:         video.BVID,
		Title:      CleanTitle(video.Title),
		DurationMS: ParseDurationText(video.Length),
		Artists: []ArtistRef{{
			ID:   strconv.FormatInt(video.Mid, 10),
			Name: video.Author,
		}},
		Cover: video.Pic,
		Brief: true,
	}
}

// PlaylistFromFavFolder normalizes an ordinary favorite folder.
func PlaylistFromFavFolder(id string, folder *bilibili.FavFolder) Playlist {
	return Playlist{
		ID:   id,
		Name: folder.Title,
		Creator: &ArtistRef{
			ID:   strconv.FormatInt(folder.Upper.Mid, 10),
			Name: folder.Upper.Name,
		},
		Cover:       folder.Cover,
		Description: folder.Intro,
		Count:       folder.MediaCount,
	}
}

// PlaylistFromSeason normalizes a seasonal favorite from its first page.
func PlaylistFromSeason(id string, page *bilibili.SeasonPage) Playlist {
	return Playlist{
		ID:   id,
		Name: page.Info.Title,
		Creator: &ArtistRef{
			ID:   strconv.FormatInt(page.Info.Upper.Mid, 10),
			Name: page.Info.Upper.Name,
		},
		Cover:       page.Info.Cover,
		Description: page.Info.Intro,
		Count:       page.Info.MediaCount,
	}
}

// PlaylistFromAudioFolder normalizes an audio favorite folder or collected
// menu. Collected menus declaring zero songs have an unknown count; it is
// corrected by a probe before streaming.
func PlaylistFromAudioFolder(id string, folder *bilibili.AudioFolder, collected bool) Playlist {
	count := folder.SongNum
	if collected {
		count = folder.TotalSong
		if count == 0 {
			count = CountUnknown
		}
	}
	return Playlist{
		ID:   id,
		Name: folder.Title,
		Creator: &ArtistRef{
			ID:   strconv.FormatInt(folder.UID, 10),
			Name: folder.Uname,
		},
		Cover:       folder.Cover,
		Description: folder.Intro,
		Count:       count,
	}
}

// ArtistFromCard normalizes an uploader card. The fan-badge medal name
// becomes the artist's single alias, but only when the badge is present,
// shown and worn, and actually names a medal.
func ArtistFromCard(card *bilibili.UserCard, hotSongs []Song) Artist {
	var aliases []string
	if card.FansBadge && card.Medal.Show && card.Medal.Wear && card.Medal.MedalName != "" {
		aliases = []string{card.Medal.MedalName}
	}
	return Artist{
		ID:          card.Mid,
		Name:        card.Name,
		Pic:         card.Face,
		Aliases:     aliases,
		Description: card.Sign,
		HotSongs:    hotSongs,
	}
}
