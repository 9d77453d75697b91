package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaforge/internal/cache"
	"mediaforge/internal/config"
	"mediaforge/internal/convert"
	"mediaforge/internal/engine"
	"mediaforge/internal/media"
)

type nullStore struct{}

func (nullStore) Put(context.Context, *media.ConvertedMediaItem) error { return nil }
func (nullStore) GetAll(context.Context) ([]*media.ConvertedMediaItem, error) {
	return nil, nil
}
func (nullStore) Delete(context.Context, string) error { return nil }
func (nullStore) Clear(context.Context) error          { return nil }

type stubEngine struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newStubEngine() *stubEngine {
	return &stubEngine{files: make(map[string][]byte)}
}

func (e *stubEngine) Load(context.Context) error { return nil }

func (e *stubEngine) WriteFile(name string, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.files[name] = data
	return nil
}

func (e *stubEngine) Exec(_ context.Context, args []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.files[args[len(args)-1]] = []byte("converted")
	return nil
}

func (e *stubEngine) ReadFile(name string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	data, ok := e.files[name]
	if !ok {
		return nil, errors.New("missing file")
	}
	return data, nil
}

func (e *stubEngine) DeleteFile(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.files, name)
	return nil
}

func (e *stubEngine) OnLog(engine.LogHandler) {}
func (e *stubEngine) Terminate()              {}

func newTestWatcher(t *testing.T) (*Watcher, *cache.Manager) {
	t.Helper()
	cfg := &config.Config{
		WatchDirs: []string{t.TempDir()},
		WatchFormats: map[media.MediaType]string{
			media.TypeAudio: "mp3",
			media.TypeImage: "jpeg",
			media.TypeVideo: "mp4",
		},
	}
	mc := cache.NewManager(nullStore{}, 100, false)
	engines := engine.NewManager(func() engine.Engine { return newStubEngine() })
	wr, err := NewRecursiveWatcher(cfg, convert.New(engines), mc)
	require.NoError(t, err)
	t.Cleanup(func() { wr.Close() })
	return wr, mc
}

func TestConvertFileAdmitsToCache(t *testing.T) {
	wr, mc := newTestWatcher(t)

	path := filepath.Join(t.TempDir(), "track.wav")
	require.NoError(t, os.WriteFile(path, []byte("wav-bytes"), 0o644))

	require.NoError(t, wr.convertFile(context.Background(), path, "mp3"))

	items := mc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "track.wav", items[0].OriginalName)
	assert.Equal(t, "track-converted.mp3", items[0].ConvertedName)
}

func TestConvertFileSkipsMatchingFormat(t *testing.T) {
	wr, mc := newTestWatcher(t)

	path := filepath.Join(t.TempDir(), "track.mp3")
	require.NoError(t, os.WriteFile(path, []byte("mp3-bytes"), 0o644))

	require.NoError(t, wr.convertFile(context.Background(), path, "mp3"))
	assert.Empty(t, mc.Items())
}

func TestConvertFileMissingFile(t *testing.T) {
	wr, _ := newTestWatcher(t)
	err := wr.convertFile(context.Background(), filepath.Join(t.TempDir(), "nope.wav"), "mp3")
	assert.Error(t, err)
}

func TestDefaultOptionsFor(t *testing.T) {
	opts, err := defaultOptionsFor("mp3")
	require.NoError(t, err)
	assert.IsType(t, convert.AudioOptions{}, opts)

	opts, err = defaultOptionsFor("jpeg")
	require.NoError(t, err)
	assert.IsType(t, convert.ImageOptions{}, opts)

	opts, err = defaultOptionsFor("mp4")
	require.NoError(t, err)
	assert.IsType(t, convert.VideoOptions{}, opts)

	_, err = defaultOptionsFor("txt")
	assert.Error(t, err)
}

func TestPauseResume(t *testing.T) {
	wr, _ := newTestWatcher(t)
	assert.False(t, wr.Paused())
	wr.Pause()
	assert.True(t, wr.Paused())
	wr.Resume()
	assert.False(t, wr.Paused())
}
