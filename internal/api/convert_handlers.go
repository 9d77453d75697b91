package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"mediaforge/internal/convert"
	"mediaforge/internal/engine"
	"mediaforge/internal/media"
)

func (s *Server) listFormats(c *gin.Context) {
	mt := media.MediaType(c.Query("type"))
	switch mt {
	case media.TypeAudio, media.TypeImage, media.TypeVideo:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be audio, image or video"})
		return
	}
	mode := media.ModeBase
	if c.Query("mode") == string(media.ModeExtended) {
		mode = media.ModeExtended
	}
	c.JSON(http.StatusOK, gin.H{"formats": media.FormatsFor(mt, mode)})
}

// optionsFromForm builds the option variant for the submitted media type.
// Absent fields stay absent; the command builder emits nothing for them.
func optionsFromForm(c *gin.Context) (convert.Options, error) {
	format := c.PostForm("format")
	mt, err := media.TypeOf(format)
	if err != nil {
		return nil, err
	}

	switch mt {
	case media.TypeAudio:
		return convert.AudioOptions{
			Format:     format,
			Codec:      c.PostForm("codec"),
			Bitrate:    c.PostForm("bitrate"),
			SampleRate: parseIntDefault(c.PostForm("sampleRate"), 0),
			Channels:   parseIntDefault(c.PostForm("channels"), 0),
		}, nil
	case media.TypeVideo:
		return convert.VideoOptions{
			Format:     format,
			Resolution: c.PostForm("resolution"),
			Bitrate:    c.PostForm("bitrate"),
			Codec:      c.PostForm("codec"),
			FPS:        parseIntDefault(c.PostForm("fps"), 0),
			Preset:     c.PostForm("preset"),
			CRF:        parseIntPtr(c.PostForm("crf")),
		}, nil
	default:
		return convert.ImageOptions{
			Format:           format,
			Quality:          parseIntPtr(c.PostForm("quality")),
			CompressionLevel: parseIntPtr(c.PostForm("compressionLevel")),
		}, nil
	}
}

func (s *Server) convertFiles(c *gin.Context) {
	opts, err := optionsFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files submitted"})
		return
	}

	inputs := make([]convert.Input, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "read upload " + h.Filename})
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "read upload " + h.Filename})
			return
		}
		inputs = append(inputs, convert.Input{Name: h.Filename, Data: data})
	}

	result := s.conv.ConvertAll(c.Request.Context(), inputs, opts, s.cfg.MaxWorkers)

	// Engine bring-up failures poison the whole batch; report them as a
	// service error instead of per-file failures.
	if len(result.Items) == 0 && len(result.Failures) == len(inputs) {
		if errors.Is(result.Failures[0].Err, engine.ErrEngineInit) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": result.Failures[0].Err.Error()})
			return
		}
	}

	for _, item := range result.Items {
		s.cache.Add(c.Request.Context(), item)
	}

	failures := make([]gin.H, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, gin.H{"name": f.Name, "error": f.Err.Error()})
	}
	c.JSON(http.StatusOK, gin.H{
		"converted": itemViews(result.Items),
		"failures":  failures,
	})
}

func (s *Server) getStatus(c *gin.Context) {
	items := s.cache.Items()
	total := s.cache.TotalSize()
	c.JSON(http.StatusOK, gin.H{
		"engine_ready":  s.engines.Ready(),
		"item_count":    len(items),
		"total_size":    total,
		"storage_limit": s.cache.BudgetMB(),
		"persist_media": s.cache.Persistent(),
	})
}
