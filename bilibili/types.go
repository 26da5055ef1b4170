package bilibili

// Raw response shapes for the subset of the Bilibili web API this provider
// consumes. Envelopes carry a code/message pair; code 0 means success.

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// VideoInfo is the /x/web-interface/view record for a single video.
type VideoInfo struct {
	BVID     string `json:"bvid"`
	AID      int64  `json:"aid"`
	CID      int64  `json:"cid"`
	Title    string `json:"title"`
	Pic      string `json:"pic"`
	Desc     string `json:"desc"`
	Duration int    `json:"duration"` // seconds
	Owner    struct {
		Mid  int64  `json:"mid"`
		Name string `json:"name"`
		Face string `json:"face"`
	} `json:"owner"`
	Pages []struct {
		CID  int64  `json:"cid"`
		Part string `json:"part"`
	} `json:"pages"`
}

// SearchVideo is one result row from the typed video search. Titles carry
// <em class="keyword"> highlighting around the matched terms.
type SearchVideo struct {
	Type     string `json:"type"`
	BVID     string `json:"bvid"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Mid      int64  `json:"mid"`
	Duration string `json:"duration"` // "MM:SS" or "HH:MM:SS" text
	Pic      string `json:"pic"`
}

// DashStream is one encoded rendition inside the DASH manifest: a coded
// quality level for video streams, a bitrate for audio streams.
type DashStream struct {
	ID        int      `json:"id"` // qn code for video entries
	BaseURL   string   `json:"base_url"`
	BackupURL []string `json:"backup_url"`
	Bandwidth int      `json:"bandwidth"` // bits per second
	MimeType  string   `json:"mime_type"`
	Codecs    string   `json:"codecs"`
}

// PlayData is the playurl response body: the variant descriptor for a video.
type PlayData struct {
	AcceptQuality []int `json:"accept_quality"`
	Dash          struct {
		Video []DashStream `json:"video"`
		Audio []DashStream `json:"audio"`
		Flac  struct {
			Audio *DashStream `json:"audio"`
		} `json:"flac"`
		Dolby struct {
			Audio []DashStream `json:"audio"`
		} `json:"dolby"`
	} `json:"dash"`
}

// RcmdVideo is one home-feed recommendation entry.
type RcmdVideo struct {
	BVID     string `json:"bvid"`
	Title    string `json:"title"`
	Pic      string `json:"pic"`
	Duration int    `json:"duration"` // seconds
	Owner    struct {
		Mid  int64  `json:"mid"`
		Name string `json:"name"`
	} `json:"owner"`
}

// AudioTrack is a music-zone song record (song/info and listing rows share it).
type AudioTrack struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	UID      int64  `json:"uid"`
	Uname    string `json:"uname"`
	Author   string `json:"author"`
	Duration int    `json:"duration"` // seconds
	Lyric    string `json:"lyric"`    // URL of the lyric payload, may be empty
	Cover    string `json:"cover"`
}

// AudioStream is the music-zone play descriptor: a set of CDN mirrors for
// the track's single rendition.
type AudioStream struct {
	SID  int64    `json:"sid"`
	Type int      `json:"type"`
	Size int64    `json:"size"`
	CDNs []string `json:"cdns"`
}

// AudioFolder describes an audio favorite folder (curmenu == false) or a
// collected menu (curmenu == true). The two kinds report their size in
// different fields; Collected menus may declare zero songs even when
// non-empty, in which case the real total has to be probed.
type AudioFolder struct {
	MenuID    int64  `json:"menuId"`
	Title     string `json:"title"`
	UID       int64  `json:"uid"`
	Uname     string `json:"uname"`
	Cover     string `json:"cover"`
	Intro     string `json:"intro"`
	SongNum   int    `json:"song_num"`   // favorite folders
	TotalSong int    `json:"totalCount"` // collected menus, 0 when unknown
}

// AudioSongPage is one page of an audio folder listing.
type AudioSongPage struct {
	CurPage   int          `json:"curPage"`
	PageCount int          `json:"pageCount"`
	TotalSize int          `json:"totalSize"`
	Rows      []AudioTrack `json:"data"`
}

// FavFolder is the /x/v3/fav/folder/info record.
type FavFolder struct {
	ID         int64  `json:"id"`
	FID        int64  `json:"fid"`
	MID        int64  `json:"mid"`
	Title      string `json:"title"`
	Cover      string `json:"cover"`
	Intro      string `json:"intro"`
	MediaCount int    `json:"media_count"`
	Upper      struct {
		Mid  int64  `json:"mid"`
		Name string `json:"name"`
	} `json:"upper"`
}

// FavoriteMedia is one row of a favorite-folder resource listing.
type FavoriteMedia struct {
	ID       int64  `json:"id"`
	BVID     string `json:"bvid"`
	Type     int    `json:"type"`
	Title    string `json:"title"`
	Cover    string `json:"cover"`
	Duration int    `json:"duration"` // seconds
	Upper    struct {
		Mid  int64  `json:"mid"`
		Name string `json:"name"`
	} `json:"upper"`
}

// FavResourcePage is one page of /x/v3/fav/resource/list.
type FavResourcePage struct {
	Info    FavFolder       `json:"info"`
	Medias  []FavoriteMedia `json:"medias"`
	HasMore bool            `json:"has_more"`
}

// SeasonPage is one page of a seasonal (show-style) favorite listing.
type SeasonPage struct {
	Info struct {
		ID         int64  `json:"id"`
		Title      string `json:"title"`
		Cover      string `json:"cover"`
		Intro      string `json:"intro"`
		MediaCount int    `json:"media_count"`
		Upper      struct {
			Mid  int64  `json:"mid"`
			Name string `json:"name"`
		} `json:"upper"`
	} `json:"info"`
	Medias []FavoriteMedia `json:"medias"`
}

// ToViewData is the later-watch queue: count plus the full item preview.
type ToViewData struct {
	Count int         `json:"count"`
	List  []VideoInfo `json:"list"`
}

// HistoryItem is one watch-history row.
type HistoryItem struct {
	History struct {
		BVID string `json:"bvid"`
	} `json:"history"`
	Title      string `json:"title"`
	Cover      string `json:"cover"`
	AuthorName string `json:"author_name"`
	AuthorMid  int64  `json:"author_mid"`
	Duration   int    `json:"duration"` // seconds
	ViewAt     int64  `json:"view_at"`
}

// DynamicItem is one subscription-feed entry, flattened to the archive module.
type DynamicItem struct {
	IDStr   string `json:"id_str"`
	Modules struct {
		Author struct {
			Mid  int64  `json:"mid"`
			Name string `json:"name"`
		} `json:"module_author"`
		Dynamic struct {
			Major struct {
				Archive struct {
					BVID         string `json:"bvid"`
					Title        string `json:"title"`
					Cover        string `json:"cover"`
					DurationText string `json:"duration_text"` // "MM:SS"
				} `json:"archive"`
			} `json:"major"`
		} `json:"module_dynamic"`
	} `json:"modules"`
}

// DynamicPage is one cursor page of the subscription feed.
type DynamicPage struct {
	Items   []DynamicItem `json:"items"`
	Offset  string        `json:"offset"`
	HasMore bool          `json:"has_more"`
}

// UserCard is the /x/web-interface/card record for an uploader.
type UserCard struct {
	Mid       string `json:"mid"`
	Name      string `json:"name"`
	Face      string `json:"face"`
	Sign      string `json:"sign"`
	FansBadge bool   `json:"fans_badge"`
	Medal     struct {
		Show      bool   `json:"show"`
		Wear      bool   `json:"wear"`
		MedalName string `json:"medal_name"`
	} `json:"fans_medal"`
}

// UpVideo is one row of an uploader's space video listing.
type UpVideo struct {
	BVID   string `json:"bvid"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Mid    int64  `json:"mid"`
	Length string `json:"length"` // "MM:SS" text
	Pic    string `json:"pic"`
}

// UpVideoPage is one page of /x/space/wbi/arc/search.
type UpVideoPage struct {
	List struct {
		Vlist []UpVideo `json:"vlist"`
	} `json:"list"`
	Page struct {
		Count int `json:"count"`
	} `json:"page"`
}
