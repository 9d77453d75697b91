// Package api exposes the conversion pipeline and the media cache over
// HTTP.
package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"mediaforge/internal/cache"
	"mediaforge/internal/config"
	"mediaforge/internal/convert"
	"mediaforge/internal/engine"
)

type Server struct {
	Router *gin.Engine

	cfg     *config.Config
	cache   *cache.Manager
	conv    *convert.Converter
	engines *engine.Manager
}

func NewServer(cfg *config.Config, mc *cache.Manager, conv *convert.Converter, engines *engine.Manager) *Server {
	g := gin.Default()
	s := &Server{Router: g, cfg: cfg, cache: mc, conv: conv, engines: engines}

	api := g.Group("/api")
	api.GET("/formats", s.listFormats)
	api.POST("/convert", s.convertFiles)
	api.GET("/media", s.listMedia)
	api.GET("/media/grouped", s.groupedMedia)
	api.GET("/media/:id/download", s.downloadMedia)
	api.DELETE("/media/:id", s.deleteMedia)
	api.DELETE("/media", s.clearMedia)
	api.GET("/settings", s.getSettings)
	api.PUT("/settings", s.updateSettings)
	api.GET("/status", s.getStatus)

	return s
}

// Run starts serving on the configured address.
func (s *Server) Run() error {
	return s.Router.Run(s.cfg.HTTPAddr())
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// parseIntPtr returns nil for an empty or malformed value, so absent form
// fields stay absent in the option set.
func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
