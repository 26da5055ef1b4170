package main

import (
	"net/http"
	"strconv"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"bilifm/bilibili"
	appConfig "bilifm/config"
	"bilifm/database"
	"bilifm/lyrics"
	"bilifm/provider"
	"bilifm/quality"
	appSentry "bilifm/sentry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	log.SetFormatter(&nested.Formatter{
		HideKeys:    true,
		FieldsOrder: []string{"module", "function"},
	})

	appConfig.NewConfig()
	if appConfig.Config.Sentry.Enabled {
		appSentry.Init()
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	db, err := database.New(appConfig.Config.Options.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	// A cookie passed by env wins and is persisted for the next run;
	// otherwise the previous session is restored from the store.
	if appConfig.Config.Bilibili.Cookie != "" {
		if err := db.SaveCookie(appConfig.Config.Bilibili.Cookie); err != nil {
			log.Warnf("could not persist session cookie: %v", err)
		}
	} else {
		cookie, err := db.LoadCookie()
		if err != nil {
			log.Warnf("could not restore session cookie: %v", err)
		}
		appConfig.Config.Bilibili.Cookie = cookie
	}

	client := bilibili.NewClient()
	prov := provider.New(client,
		appConfig.Config.Bilibili.PageSize,
		appConfig.Config.Bilibili.HotSongLimit)

	router := gin.Default()
	if appConfig.Config.Sentry.Enabled {
		router.Use(appSentry.GetSentryGin())
	}

	router.GET("/resolve", func(c *gin.Context) {
		resolved, err := prov.Resolve(c.Request.Context(), c.Query("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		switch {
		case resolved.Song != nil:
			c.JSON(http.StatusOK, gin.H{"song": resolved.Song})
		case resolved.Playlist != nil:
			c.JSON(http.StatusOK, gin.H{"playlist": resolved.Playlist})
		default:
			c.JSON(http.StatusOK, gin.H{})
		}
	})

	router.GET("/search", func(c *gin.Context) {
		result, err := prov.Search(c.Request.Context(), c.Query("q"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	router.GET("/qualities", func(c *gin.Context) {
		tiers, err := prov.ListQualities(c.Request.Context(), c.Query("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"qualities": tiers})
	})

	router.GET("/media", func(c *gin.Context) {
		id := c.Query("id")
		tier := quality.AudioTier(c.DefaultQuery("quality", string(quality.AudioHigh)))
		locator, err := prov.GetMedia(c.Request.Context(), id, tier)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if locator == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no media at requested quality"})
			return
		}
		if err := db.RecordPlay(id, "", "", string(tier), locator.URL); err != nil {
			log.Warnf("could not record play: %v", err)
		}
		c.JSON(http.StatusOK, locator)
	})

	router.GET("/songs", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		reader, err := prov.SongsReader(c.Request.Context(), c.Query("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		songs, err := reader.Collect(c.Request.Context(), limit)
		if err != nil {
			appSentry.ReportError(err)
			c.JSON(http.StatusBadGateway, gin.H{
				"error": err.Error(),
				"songs": songs, // whatever was yielded before the failure
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"total":       reader.Total(),
			"approximate": reader.TotalIsUpperBound(),
			"songs":       songs,
		})
	})

	router.GET("/artist/:mid", func(c *gin.Context) {
		artist, err := prov.ResolveArtist(c.Request.Context(), c.Param("mid"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, artist)
	})

	router.GET("/artist/:mid/songs", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		reader := prov.ArtistSongsReader(c.Param("mid"))
		songs, err := reader.Collect(c.Request.Context(), limit)
		if err != nil {
			appSentry.ReportError(err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "songs": songs})
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": reader.Total(), "songs": songs})
	})

	router.GET("/video-qualities", func(c *gin.Context) {
		tiers, err := prov.ListVideoQualities(c.Request.Context(), c.Query("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"qualities": tiers})
	})

	router.GET("/video-media", func(c *gin.Context) {
		tier := quality.VideoTier(c.DefaultQuery("quality", string(quality.VideoFHD)))
		locator, err := prov.GetVideoMedia(c.Request.Context(), c.Query("id"), tier)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if locator == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no media at requested quality"})
			return
		}
		c.JSON(http.StatusOK, locator)
	})

	router.GET("/lyric", func(c *gin.Context) {
		resolved, err := prov.Resolve(c.Request.Context(), c.Query("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		if resolved.Song == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "not a song"})
			return
		}
		text, err := prov.SongLyric(c.Request.Context(), resolved.Song)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"lyric": text, "plain": lyrics.Plain(text)})
	})

	router.GET("/playlists", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"playlists": provider.SyntheticPlaylists()})
	})

	router.GET("/home", func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		songs, err := prov.HomeRecommendations(c.Request.Context(), page)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"songs": songs})
	})

	router.GET("/history", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		records, err := db.GetHistory(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"history": records})
	})

	router.GET("/most-played", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		records, err := db.GetMostPlayed(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"most_played": records})
	})

	port := appConfig.Config.Options.Port
	if port == "" {
		port = "8080"
	}
	log.Infof("Starting server on :%s", port)
	return router.Run(":" + port)
}

// abortWithError maps a provider failure onto the HTTP surface: malformed
// or unsupported identifiers are the caller's fault, everything else is a
// backend failure and goes to sentry.
func abortWithError(c *gin.Context, err error) {
	if provider.IsClassificationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	appSentry.ReportError(err)
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
