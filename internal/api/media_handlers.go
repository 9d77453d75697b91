package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mediaforge/internal/cache"
	"mediaforge/internal/media"
	"mediaforge/internal/util"
)

// itemView is the wire representation of a cached item; bytes are served
// only through the download endpoint.
type itemView struct {
	ID            string    `json:"id"`
	OriginalName  string    `json:"originalName"`
	ConvertedName string    `json:"convertedName"`
	Type          string    `json:"type"`
	Size          int64     `json:"size"`
	SizeLabel     string    `json:"sizeLabel"`
	CreatedAt     time.Time `json:"createdAt"`
}

func viewOf(item *media.ConvertedMediaItem) itemView {
	label, err := util.FormatMediaFileSize(item.Size, 2)
	if err != nil {
		label = fmt.Sprintf("%d Bytes", item.Size)
	}
	return itemView{
		ID:            item.ID,
		OriginalName:  item.OriginalName,
		ConvertedName: item.ConvertedName,
		Type:          string(item.Type),
		Size:          item.Size,
		SizeLabel:     label,
		CreatedAt:     item.CreatedAt,
	}
}

func itemViews(items []*media.ConvertedMediaItem) []itemView {
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, viewOf(item))
	}
	return views
}

func (s *Server) listMedia(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": itemViews(s.cache.Items())})
}

func (s *Server) groupedMedia(c *gin.Context) {
	grouped := s.cache.GroupByDate(time.Now())
	out := make(map[string][]itemView, len(grouped))
	for label, items := range grouped {
		out[label] = itemViews(items)
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "order": cache.BucketOrder})
}

func (s *Server) downloadMedia(c *gin.Context) {
	item := s.cache.Get(c.Param("id"))
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	mime, err := media.MimeType(util.Ext(item.ConvertedName))
	if err != nil {
		mime = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+item.ConvertedName+`"`)
	c.Data(http.StatusOK, mime, item.Data)
}

func (s *Server) deleteMedia(c *gin.Context) {
	id := c.Param("id")
	if s.cache.Get(id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	s.cache.Remove(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) clearMedia(c *gin.Context) {
	s.cache.Clear(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

type settingsRequest struct {
	StorageLimitMB *int  `json:"storageLimitMB"`
	PersistMedia   *bool `json:"persistMedia"`
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"storageLimitMB": s.cache.BudgetMB(),
		"persistMedia":   s.cache.Persistent(),
	})
}

func (s *Server) updateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload"})
		return
	}
	if req.StorageLimitMB != nil {
		if *req.StorageLimitMB <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "storageLimitMB must be positive"})
			return
		}
		s.cache.SetBudgetMB(c.Request.Context(), *req.StorageLimitMB)
	}
	if req.PersistMedia != nil {
		s.cache.SetPersistence(c.Request.Context(), *req.PersistMedia)
	}
	s.getSettings(c)
}
