package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mediaforge/internal/api"
	"mediaforge/internal/cache"
	"mediaforge/internal/config"
	"mediaforge/internal/convert"
	"mediaforge/internal/engine"
	"mediaforge/internal/store"
	"mediaforge/internal/watcher"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log.Printf("starting mediaforge on port %d, db=%s, limit=%dMB, persist=%t, watch=%v",
		cfg.HTTPPort, cfg.DBPath, cfg.StorageLimitMB, cfg.PersistMedia, cfg.WatchDirs)

	st := store.NewStore(cfg.DBPath)
	defer st.Close()

	mc := cache.NewManager(st, cfg.StorageLimitMB, cfg.PersistMedia)
	if cfg.PersistMedia {
		mc.Load(context.Background())
		log.Printf("restored %d media items from %s", len(mc.Items()), cfg.DBPath)
	}

	engines := engine.NewManager(func() engine.Engine {
		return engine.NewFFmpeg(engine.FFmpegConfig{Binary: cfg.FFmpegPath, WorkDir: cfg.WorkDir})
	})
	conv := convert.New(engines)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var w *watcher.Watcher
	if len(cfg.WatchDirs) > 0 {
		var err error
		w, err = watcher.NewRecursiveWatcher(cfg, conv, mc)
		if err != nil {
			log.Fatalf("failed to create watcher: %v", err)
		}
		defer w.Close()
		go func() {
			if err := w.Start(ctx); err != nil {
				log.Printf("watcher error: %v", err)
			}
		}()
	}

	server := api.NewServer(cfg, mc, conv, engines)
	httpSrv := &http.Server{Addr: cfg.HTTPAddr(), Handler: server.Router}
	go func() {
		log.Printf("http server listening on %s", cfg.HTTPAddr())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigCh
	log.Printf("received signal %s, shutting down...", s)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer shutdownCancel()
	if w != nil {
		w.Pause()
	}
	_ = httpSrv.Shutdown(shutdownCtx)
	engines.Terminate()
	log.Printf("shutdown complete")
}
