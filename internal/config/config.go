package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"mediaforge/internal/media"
)

// Config carries the daemon configuration, loaded from the environment.
type Config struct {
	HTTPPort       int
	DBPath         string
	FFmpegPath     string
	WorkDir        string
	StorageLimitMB int
	PersistMedia   bool
	MaxWorkers     int

	WatchDirs         []string
	StabilityDelaySec int
	// WatchFormats maps a media type to the target format used for files
	// picked up by the drop-folder watcher.
	WatchFormats map[media.MediaType]string
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTPPort = getEnvInt("HTTP_PORT", 8000)
	cfg.DBPath = getEnv("DB_PATH", "data/media.db")
	cfg.FFmpegPath = getEnv("FFMPEG_PATH", "ffmpeg")
	cfg.WorkDir = getEnv("WORK_DIR", "")
	cfg.StorageLimitMB = getEnvInt("STORAGE_LIMIT_MB", 100)
	cfg.PersistMedia = getEnvBool("PERSIST_MEDIA", true)
	cfg.MaxWorkers = getEnvInt("MAX_WORKERS", 2)
	cfg.WatchDirs = splitAndTrim(os.Getenv("WATCH_DIRS"))
	cfg.StabilityDelaySec = getEnvInt("STABILITY_DELAY", 1)
	cfg.WatchFormats = map[media.MediaType]string{
		media.TypeAudio: getEnv("WATCH_AUDIO_FORMAT", "mp3"),
		media.TypeImage: getEnv("WATCH_IMAGE_FORMAT", "jpeg"),
		media.TypeVideo: getEnv("WATCH_VIDEO_FORMAT", "mp4"),
	}
	return cfg
}

func (c *Config) HTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }

func splitAndTrim(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
