package config

import (
	"os"
	"strconv"
	"time"
)

type ConfigStruct struct {
	Bilibili BilibiliConfig
	Options  Options
	Sentry   SentryConfig
}

type BilibiliConfig struct {
	Cookie         string // full cookie header (SESSDATA and friends)
	RequestTimeout time.Duration
	PageSize       int
	HotSongLimit   int
}

type SentryConfig struct {
	DSN     string
	Enabled bool
}

type Options struct {
	Port   string
	DBPath string
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Bilibili: BilibiliConfig{
			Cookie:         os.Getenv("BILIBILI_COOKIE"),
			RequestTimeout: getRequestTimeout(),
			PageSize:       getPageSize(),
			HotSongLimit:   getHotSongLimit(),
		},
		Sentry: SentryConfig{
			DSN:     os.Getenv("SENTRY_DSN"),
			Enabled: os.Getenv("SENTRY_DSN") != "",
		},
		Options: Options{
			Port:   os.Getenv("PORT"),
			DBPath: os.Getenv("DB_PATH"),
		},
	}

	Config = config
}

func getRequestTimeout() time.Duration {
	timeoutStr := os.Getenv("BILIBILI_TIMEOUT_SECONDS")
	if timeoutStr == "" {
		return 30 * time.Second
	}
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil || timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(timeout) * time.Second
}

func getPageSize() int {
	sizeStr := os.Getenv("BILIBILI_PAGE_SIZE")
	if sizeStr == "" {
		return 20
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size <= 0 {
		return 20
	}
	if size > 50 {
		return 50 // API max per page
	}
	return size
}

func getHotSongLimit() int {
	limitStr := os.Getenv("BILIBILI_HOT_SONG_LIMIT")
	if limitStr == "" {
		return 10
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 10
	}
	if limit > 50 {
		return 50
	}
	return limit
}
