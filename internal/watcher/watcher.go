package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mediaforge/internal/cache"
	"mediaforge/internal/config"
	"mediaforge/internal/convert"
	"mediaforge/internal/logging"
	"mediaforge/internal/media"
	"mediaforge/internal/util"
)

// Watcher converts media files dropped into the configured directories and
// admits the results to the cache. Directories are registered recursively.
type Watcher struct {
	cfg    *config.Config
	conv   *convert.Converter
	cache  *cache.Manager
	w      *fsnotify.Watcher
	roots  []string
	mu     sync.Mutex
	paused bool
}

func NewRecursiveWatcher(cfg *config.Config, conv *convert.Converter, mc *cache.Manager) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{cfg: cfg, conv: conv, cache: mc, w: w, roots: cfg.WatchDirs}, nil
}

// Start registers all roots and blocks processing events until ctx is done.
func (wr *Watcher) Start(ctx context.Context) error {
	if err := wr.registerAll(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-wr.w.Events:
			wr.handleEvent(ctx, ev)
		case err := <-wr.w.Errors:
			logging.Warn("watcher error: %v", err)
		}
	}
}

func (wr *Watcher) Close() error { return wr.w.Close() }

func (wr *Watcher) Pause()       { wr.mu.Lock(); wr.paused = true; wr.mu.Unlock() }
func (wr *Watcher) Resume()      { wr.mu.Lock(); wr.paused = false; wr.mu.Unlock() }
func (wr *Watcher) Paused() bool { wr.mu.Lock(); defer wr.mu.Unlock(); return wr.paused }

func (wr *Watcher) registerAll() error {
	for _, root := range wr.roots {
		filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				_ = wr.w.Add(path)
			}
			return nil
		})
	}
	return nil
}

func (wr *Watcher) handleEvent(ctx context.Context, ev fsnotify.Event) {
	if ev.Op&fsnotify.Create == 0 {
		return
	}
	fi, err := os.Stat(ev.Name)
	if err != nil {
		return
	}
	// New directories get registered together with their subdirs.
	if fi.IsDir() {
		_ = filepath.WalkDir(ev.Name, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				_ = wr.w.Add(path)
			}
			return nil
		})
		return
	}
	if wr.Paused() {
		return
	}
	mt, err := media.TypeOf(util.Ext(ev.Name))
	if err != nil {
		return
	}
	target, ok := wr.cfg.WatchFormats[mt]
	if !ok {
		return
	}
	go func(path string, mt media.MediaType, target string) {
		util.WaitFileStable(path, time.Duration(wr.cfg.StabilityDelaySec)*time.Second)
		if err := wr.convertFile(ctx, path, target); err != nil {
			logging.Warn("watched convert %s: %v", path, err)
		}
	}(ev.Name, mt, target)
}

func (wr *Watcher) convertFile(ctx context.Context, path, target string) error {
	// A file already carrying the target format would only be copied.
	if util.Ext(path) == target {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	opts, err := defaultOptionsFor(target)
	if err != nil {
		return err
	}
	item, err := wr.conv.Convert(ctx, data, filepath.Base(path), opts)
	if err != nil {
		return err
	}
	wr.cache.Add(ctx, item)
	logging.Info("converted watched file %s -> %s (%d bytes)", path, item.ConvertedName, item.Size)
	return nil
}

func defaultOptionsFor(target string) (convert.Options, error) {
	mt, err := media.TypeOf(target)
	if err != nil {
		return nil, err
	}
	switch mt {
	case media.TypeAudio:
		return convert.AudioOptions{Format: target}, nil
	case media.TypeImage:
		return convert.ImageOptions{Format: target}, nil
	default:
		return convert.VideoOptions{Format: target}, nil
	}
}
