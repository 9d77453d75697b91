package config

import (
	"testing"

	"mediaforge/internal/media"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPPort != 8000 {
		t.Errorf("HTTPPort = %d, want 8000", cfg.HTTPPort)
	}
	if cfg.StorageLimitMB != 100 {
		t.Errorf("StorageLimitMB = %d, want 100", cfg.StorageLimitMB)
	}
	if !cfg.PersistMedia {
		t.Error("PersistMedia should default to true")
	}
	if cfg.FFmpegPath != "ffmpeg" {
		t.Errorf("FFmpegPath = %q, want ffmpeg", cfg.FFmpegPath)
	}
	if cfg.WatchFormats[media.TypeAudio] != "mp3" {
		t.Errorf("audio watch format = %q, want mp3", cfg.WatchFormats[media.TypeAudio])
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("STORAGE_LIMIT_MB", "250")
	t.Setenv("PERSIST_MEDIA", "false")
	t.Setenv("WATCH_DIRS", " /drop/a , /drop/b ,")
	t.Setenv("WATCH_VIDEO_FORMAT", "webm")

	cfg := Load()

	if cfg.HTTPPort != 9000 {
		t.Errorf("HTTPPort = %d, want 9000", cfg.HTTPPort)
	}
	if cfg.StorageLimitMB != 250 {
		t.Errorf("StorageLimitMB = %d, want 250", cfg.StorageLimitMB)
	}
	if cfg.PersistMedia {
		t.Error("PersistMedia should be false")
	}
	if len(cfg.WatchDirs) != 2 || cfg.WatchDirs[0] != "/drop/a" || cfg.WatchDirs[1] != "/drop/b" {
		t.Errorf("WatchDirs = %v", cfg.WatchDirs)
	}
	if cfg.WatchFormats[media.TypeVideo] != "webm" {
		t.Errorf("video watch format = %q, want webm", cfg.WatchFormats[media.TypeVideo])
	}
	if cfg.HTTPAddr() != ":9000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr())
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-number")
	t.Setenv("PERSIST_MEDIA", "maybe")

	cfg := Load()
	if cfg.HTTPPort != 8000 {
		t.Errorf("malformed HTTP_PORT should fall back to default, got %d", cfg.HTTPPort)
	}
	if !cfg.PersistMedia {
		t.Error("malformed PERSIST_MEDIA should fall back to default")
	}
}
