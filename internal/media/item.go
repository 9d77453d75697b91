package media

import (
	"time"

	"github.com/google/uuid"
)

// ConvertedMediaItem is the unit produced by a conversion, cached in memory
// and persisted to the durable store. Items are immutable once created;
// changes happen only by replacement.
type ConvertedMediaItem struct {
	ID            string    `json:"id"`
	OriginalName  string    `json:"originalName"`
	ConvertedName string    `json:"convertedName"`
	Data          []byte    `json:"-"`
	Type          MediaType `json:"type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewItem builds a ConvertedMediaItem with a fresh identity. The item takes
// ownership of data.
func NewItem(originalName, convertedName string, data []byte, mt MediaType) *ConvertedMediaItem {
	return &ConvertedMediaItem{
		ID:            uuid.NewString(),
		OriginalName:  originalName,
		ConvertedName: convertedName,
		Data:          data,
		Type:          mt,
		Size:          int64(len(data)),
		CreatedAt:     time.Now(),
	}
}
