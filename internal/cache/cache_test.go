package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaforge/internal/media"
)

type fakeStore struct {
	mu    sync.Mutex
	items map[string]*media.ConvertedMediaItem
	fail  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]*media.ConvertedMediaItem)}
}

var errFakeStore = errors.New("storage offline")

func (s *fakeStore) Put(_ context.Context, item *media.ConvertedMediaItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errFakeStore
	}
	s.items[item.ID] = item
	return nil
}

func (s *fakeStore) GetAll(context.Context) ([]*media.ConvertedMediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errFakeStore
	}
	out := make([]*media.ConvertedMediaItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	return out, nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errFakeStore
	}
	delete(s.items, id)
	return nil
}

func (s *fakeStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errFakeStore
	}
	s.items = make(map[string]*media.ConvertedMediaItem)
	return nil
}

func (s *fakeStore) ids() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.items))
	for id := range s.items {
		out[id] = true
	}
	return out
}

const mb = 1024 * 1024

func itemOfSize(name string, sizeMB int, createdAt time.Time) *media.ConvertedMediaItem {
	item := media.NewItem(name, name+"-converted.mp3", make([]byte, sizeMB*mb), media.TypeAudio)
	item.CreatedAt = createdAt
	return item
}

func TestAddMirrorsToStoreWhenPersistent(t *testing.T) {
	s := newFakeStore()
	m := NewManager(s, 100, true)
	ctx := context.Background()

	item := itemOfSize("a.wav", 1, time.Now())
	m.Add(ctx, item)

	assert.Len(t, m.Items(), 1)
	assert.True(t, s.ids()[item.ID], "item must be mirrored to the durable store")
}

func TestAddDoesNotMirrorWhenNotPersistent(t *testing.T) {
	s := newFakeStore()
	m := NewManager(s, 100, false)

	m.Add(context.Background(), itemOfSize("a.wav", 1, time.Now()))

	assert.Len(t, m.Items(), 1)
	assert.Empty(t, s.ids())
}

func TestLoadReplacesCollection(t *testing.T) {
	s := newFakeStore()
	ctx := context.Background()
	stored := itemOfSize("a.wav", 1, time.Now())
	require.NoError(t, s.Put(ctx, stored))

	m := NewManager(s, 100, true)
	m.Load(ctx)

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, stored.ID, items[0].ID)
}

func TestLoadFailureLeavesCollectionUntouched(t *testing.T) {
	s := newFakeStore()
	m := NewManager(s, 100, true)
	ctx := context.Background()

	item := itemOfSize("a.wav", 1, time.Now())
	m.Add(ctx, item)

	s.fail = true
	m.Load(ctx)

	items := m.Items()
	require.Len(t, items, 1, "load failure must not clear the in-memory collection")
	assert.Equal(t, item.ID, items[0].ID)
}

func TestRemoveDeletesDurablyEvenWhenNotPersistent(t *testing.T) {
	s := newFakeStore()
	ctx := context.Background()
	m := NewManager(s, 100, false)

	// A durable record left over from an earlier session must not survive a
	// Remove just because the persistence flag is currently off.
	item := itemOfSize("a.wav", 1, time.Now())
	require.NoError(t, s.Put(ctx, item))
	m.Load(ctx)
	require.Len(t, m.Items(), 1)

	m.Remove(ctx, item.ID)
	assert.False(t, s.ids()[item.ID], "durable delete is not gated by the persistence flag")
	assert.Empty(t, m.Items())
}

func TestClearEmptiesMemoryAndStore(t *testing.T) {
	s := newFakeStore()
	ctx := context.Background()
	m := NewManager(s, 100, true)
	m.Add(ctx, itemOfSize("a.wav", 1, time.Now()))
	m.Add(ctx, itemOfSize("b.wav", 1, time.Now()))

	m.Clear(ctx)
	assert.Empty(t, m.Items())
	assert.Empty(t, s.ids())
}

func TestEnforceBudgetEvictsOldestBeyondBoundary(t *testing.T) {
	s := newFakeStore()
	ctx := context.Background()
	m := NewManager(s, 100, true)

	now := time.Now()
	oldest := itemOfSize("oldest.wav", 40, now.Add(-3*time.Hour))
	middle := itemOfSize("middle.wav", 40, now.Add(-2*time.Hour))
	newest := itemOfSize("newest.wav", 40, now.Add(-1*time.Hour))
	for _, it := range []*media.ConvertedMediaItem{oldest, middle, newest} {
		m.Add(ctx, it)
	}

	// 40+40 = 80MB fits the 100MB budget; the third pushes to 120MB and is
	// evicted together with everything older.
	items := m.Items()
	require.Len(t, items, 2)
	ids := map[string]bool{items[0].ID: true, items[1].ID: true}
	assert.True(t, ids[newest.ID])
	assert.True(t, ids[middle.ID])
	assert.False(t, ids[oldest.ID])

	// The durable record of the evicted item is gone too.
	assert.False(t, s.ids()[oldest.ID], "a later Load must not resurrect evicted items")
}

func TestEnforceBudgetIsIdempotent(t *testing.T) {
	s := newFakeStore()
	ctx := context.Background()
	m := NewManager(s, 100, true)

	now := time.Now()
	for i, name := range []string{"a.wav", "b.wav", "c.wav"} {
		m.Add(ctx, itemOfSize(name, 40, now.Add(time.Duration(i)*time.Minute)))
	}

	first := m.Items()
	m.EnforceBudget(ctx)
	second := m.Items()

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestEnforceBudgetStableForEqualTimestamps(t *testing.T) {
	s := newFakeStore()
	ctx := context.Background()
	m := NewManager(s, 100, true)

	ts := time.Now()
	a := itemOfSize("a.wav", 40, ts)
	b := itemOfSize("b.wav", 40, ts)
	c := itemOfSize("c.wav", 40, ts)
	for _, it := range []*media.ConvertedMediaItem{a, b, c} {
		m.Add(ctx, it)
	}

	// With identical timestamps the stable sort keeps insertion order, so
	// the tail of the original order is evicted.
	items := m.Items()
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, b.ID, items[1].ID)
}

func TestSetBudgetReEnforcesImmediately(t *testing.T) {
	s := newFakeStore()
	ctx := context.Background()
	m := NewManager(s, 100, true)

	now := time.Now()
	m.Add(ctx, itemOfSize("a.wav", 30, now.Add(-2*time.Hour)))
	m.Add(ctx, itemOfSize("b.wav", 30, now.Add(-1*time.Hour)))
	require.Len(t, m.Items(), 2)

	m.SetBudgetMB(ctx, 40)
	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b.wav", items[0].OriginalName)
	assert.Equal(t, 40, m.BudgetMB())
}

func TestSetPersistenceFlushAndClearSemantics(t *testing.T) {
	s := newFakeStore()
	ctx := context.Background()
	m := NewManager(s, 100, true)

	a := itemOfSize("a.wav", 1, time.Now())
	m.Add(ctx, a)

	// true -> false clears the durable store, in-memory survives.
	m.SetPersistence(ctx, false)
	assert.Empty(t, s.ids())
	assert.Len(t, m.Items(), 1)

	// Items added while persistence is off live only in memory.
	b := itemOfSize("b.wav", 1, time.Now())
	m.Add(ctx, b)
	assert.Empty(t, s.ids())

	// false -> true flushes exactly the current collection.
	m.SetPersistence(ctx, true)
	ids := s.ids()
	assert.Len(t, ids, 2)
	assert.True(t, ids[a.ID])
	assert.True(t, ids[b.ID])

	// Same-state transitions are no-ops.
	m.SetPersistence(ctx, true)
	assert.Len(t, s.ids(), 2)
}

func TestStoreFailureDowngradesToWarning(t *testing.T) {
	s := newFakeStore()
	s.fail = true
	m := NewManager(s, 100, true)
	events := m.Subscribe()

	item := itemOfSize("a.wav", 1, time.Now())
	m.Add(context.Background(), item)

	// The in-memory view stays authoritative.
	require.Len(t, m.Items(), 1)

	var sawWarning bool
	for done := false; !done; {
		select {
		case ev := <-events:
			if ev.Kind == EventWarning {
				sawWarning = true
			}
		default:
			done = true
		}
	}
	assert.True(t, sawWarning, "a durable-store failure must surface a warning event")
}

func TestSubscribeReceivesChangeEvents(t *testing.T) {
	s := newFakeStore()
	m := NewManager(s, 100, true)
	events := m.Subscribe()

	m.Add(context.Background(), itemOfSize("a.wav", 1, time.Now()))

	select {
	case ev := <-events:
		assert.Equal(t, EventChanged, ev.Kind)
	default:
		t.Fatal("expected a change event after Add")
	}
}
