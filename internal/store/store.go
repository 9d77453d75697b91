// Package store persists converted media items in a single sqlite-backed
// collection keyed by item id.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mediaforge/internal/media"
)

// ErrStorageUnavailable wraps every durable-store failure. Callers treat it
// as advisory: the in-memory cache stays authoritative for the session.
var ErrStorageUnavailable = errors.New("durable store unavailable")

type mediaRecord struct {
	ID            string `gorm:"primaryKey"`
	OriginalName  string
	ConvertedName string
	MediaType     string
	Data          []byte `gorm:"type:blob"`
	Size          int64
	CreatedAt     time.Time
}

func (mediaRecord) TableName() string { return "media_items" }

func toRecord(item *media.ConvertedMediaItem) *mediaRecord {
	return &mediaRecord{
		ID:            item.ID,
		OriginalName:  item.OriginalName,
		ConvertedName: item.ConvertedName,
		MediaType:     string(item.Type),
		Data:          item.Data,
		Size:          item.Size,
		CreatedAt:     item.CreatedAt,
	}
}

func (r *mediaRecord) toItem() *media.ConvertedMediaItem {
	return &media.ConvertedMediaItem{
		ID:            r.ID,
		OriginalName:  r.OriginalName,
		ConvertedName: r.ConvertedName,
		Data:          r.Data,
		Type:          media.MediaType(r.MediaType),
		Size:          r.Size,
		CreatedAt:     r.CreatedAt,
	}
}

// Store is the durable collection adapter. The underlying database is
// opened lazily on first use; opening is idempotent.
type Store struct {
	path string

	mu sync.Mutex
	db *gorm.DB
}

// NewStore builds a store backed by the sqlite database at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) open() (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}

	db, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorageUnavailable, s.path, err)
	}
	if err := db.AutoMigrate(&mediaRecord{}); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", ErrStorageUnavailable, err)
	}
	s.db = db
	return db, nil
}

// Put upserts an item by id.
func (s *Store) Put(ctx context.Context, item *media.ConvertedMediaItem) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Save(toRecord(item)).Error; err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrStorageUnavailable, item.ID, err)
	}
	return nil
}

// Get returns the item with the given id, or nil if none exists.
func (s *Store) Get(ctx context.Context, id string) (*media.ConvertedMediaItem, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	var rec mediaRecord
	err = db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrStorageUnavailable, id, err)
	}
	return rec.toItem(), nil
}

// GetAll returns every stored item.
func (s *Store) GetAll(ctx context.Context) ([]*media.ConvertedMediaItem, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	var recs []mediaRecord
	if err := db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("%w: get all: %v", ErrStorageUnavailable, err)
	}
	items := make([]*media.ConvertedMediaItem, 0, len(recs))
	for i := range recs {
		items = append(items, recs[i].toItem())
	}
	return items, nil
}

// Delete removes the item with the given id. Deleting a missing id is not
// an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Delete(&mediaRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStorageUnavailable, id, err)
	}
	return nil
}

// Clear removes every stored item.
func (s *Store) Clear(ctx context.Context) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Exec("DELETE FROM media_items").Error; err != nil {
		return fmt.Errorf("%w: clear: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Count returns the number of stored items.
func (s *Store) Count(ctx context.Context) (int64, error) {
	db, err := s.open()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := db.WithContext(ctx).Model(&mediaRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: count: %v", ErrStorageUnavailable, err)
	}
	return n, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.db = nil
	return sqlDB.Close()
}
