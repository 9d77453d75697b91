// Package cache holds the in-memory collection of converted media items,
// keeps it mirrored to durable storage and enforces the storage budget.
package cache

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"mediaforge/internal/logging"
	"mediaforge/internal/media"
)

// Store is the durable collection the cache mirrors into. Failures are
// advisory: the in-memory collection stays authoritative for the session.
type Store interface {
	Put(ctx context.Context, item *media.ConvertedMediaItem) error
	GetAll(ctx context.Context) ([]*media.ConvertedMediaItem, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// EventKind discriminates cache events.
type EventKind string

const (
	// EventChanged signals that the item collection changed; derived views
	// must be recomputed.
	EventChanged EventKind = "changed"
	// EventWarning carries a user-visible warning, typically a degraded
	// durable store.
	EventWarning EventKind = "warning"
)

// Event is delivered to subscribers on collection changes and warnings.
type Event struct {
	Kind    EventKind
	Message string
}

// Manager is the in-memory source of truth for converted items.
type Manager struct {
	store Store

	mu       sync.Mutex
	items    []*media.ConvertedMediaItem
	budgetMB int
	persist  bool
	subs     []chan Event
}

// NewManager builds a cache over store with the given storage budget in
// megabytes and initial persistence flag.
func NewManager(store Store, budgetMB int, persist bool) *Manager {
	return &Manager{store: store, budgetMB: budgetMB, persist: persist}
}

// Subscribe returns a channel receiving change and warning events. Slow
// subscribers miss events rather than blocking mutations.
func (m *Manager) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

func (m *Manager) emit(ev Event) {
	m.mu.Lock()
	subs := append([]chan Event(nil), m.subs...)
	m.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (m *Manager) changed() {
	m.emit(Event{Kind: EventChanged})
}

func (m *Manager) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logging.Warn("%s", msg)
	m.emit(Event{Kind: EventWarning, Message: msg})
}

// Load replaces the in-memory collection with the durable store contents.
// On failure the in-memory collection is left untouched.
func (m *Manager) Load(ctx context.Context) {
	items, err := m.store.GetAll(ctx)
	if err != nil {
		m.warn("failed to load media from storage: %v", err)
		return
	}
	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	m.changed()
}

// Add inserts an item, mirrors it to the durable store when persistence is
// on, and enforces the storage budget.
func (m *Manager) Add(ctx context.Context, item *media.ConvertedMediaItem) {
	m.mu.Lock()
	m.items = append(m.items, item)
	persist := m.persist
	m.mu.Unlock()

	if persist {
		if err := m.store.Put(ctx, item); err != nil {
			m.warn("failed to save media to storage: %v", err)
		}
	}

	m.mu.Lock()
	m.enforceBudgetLocked(ctx)
	m.mu.Unlock()
	m.changed()
}

// Remove deletes an item from the collection. The durable delete is not
// gated on the persistence flag so no orphaned record can survive.
func (m *Manager) Remove(ctx context.Context, id string) {
	m.mu.Lock()
	kept := m.items[:0]
	for _, it := range m.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	m.items = kept
	m.mu.Unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		m.warn("failed to delete media item from storage: %v", err)
	}
	m.changed()
}

// Clear empties the collection and the durable store unconditionally.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	m.items = nil
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.warn("failed to clear media storage: %v", err)
	}
	m.changed()
}

// EnforceBudget drops the oldest items until the collection fits the
// storage budget.
func (m *Manager) EnforceBudget(ctx context.Context) {
	m.mu.Lock()
	evicted := m.enforceBudgetLocked(ctx)
	m.mu.Unlock()
	if evicted {
		m.changed()
	}
}

// enforceBudgetLocked sorts a working copy newest first and truncates the
// tail from the first item that pushes the cumulative size over budget.
// Equal timestamps keep their original relative order. Returns whether
// anything was evicted. Caller holds m.mu.
func (m *Manager) enforceBudgetLocked(ctx context.Context) bool {
	limit := int64(m.budgetMB) * 1024 * 1024

	sorted := append([]*media.ConvertedMediaItem(nil), m.items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	cut := len(sorted)
	var total int64
	for i, it := range sorted {
		total += it.Size
		if total > limit {
			cut = i
			break
		}
	}
	if cut == len(sorted) {
		return false
	}

	retained, dropped := sorted[:cut], sorted[cut:]
	m.items = retained

	// Evicted durable records are removed regardless of the persistence
	// flag; a later Load must not resurrect them.
	for _, it := range dropped {
		if err := m.store.Delete(ctx, it.ID); err != nil {
			m.warn("failed to evict media item from storage: %v", err)
		}
	}
	if m.persist {
		for _, it := range retained {
			if err := m.store.Put(ctx, it); err != nil {
				m.warn("failed to save media to storage: %v", err)
			}
		}
	}

	logging.Info("storage budget enforced: evicted %d item(s), retained %d", len(dropped), len(retained))
	return true
}

// SetBudgetMB updates the storage budget and immediately re-runs eviction.
func (m *Manager) SetBudgetMB(ctx context.Context, budgetMB int) {
	m.mu.Lock()
	m.budgetMB = budgetMB
	evicted := m.enforceBudgetLocked(ctx)
	m.mu.Unlock()
	if evicted {
		m.changed()
	}
}

// BudgetMB returns the current storage budget in megabytes.
func (m *Manager) BudgetMB() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.budgetMB
}

// Persistent reports the persistence flag.
func (m *Manager) Persistent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persist
}

// SetPersistence toggles mirroring to durable storage. Turning it on
// flushes the current in-memory collection; turning it off clears the
// durable store while the in-memory collection survives for the session.
func (m *Manager) SetPersistence(ctx context.Context, on bool) {
	m.mu.Lock()
	if m.persist == on {
		m.mu.Unlock()
		return
	}
	m.persist = on
	items := append([]*media.ConvertedMediaItem(nil), m.items...)
	m.mu.Unlock()

	if on {
		for _, it := range items {
			if err := m.store.Put(ctx, it); err != nil {
				m.warn("failed to save media to storage: %v", err)
			}
		}
		return
	}
	if err := m.store.Clear(ctx); err != nil {
		m.warn("failed to clear media storage: %v", err)
	}
}

// Items returns a copy of the current collection.
func (m *Manager) Items() []*media.ConvertedMediaItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*media.ConvertedMediaItem(nil), m.items...)
}

// Get returns the cached item with the given id, or nil.
func (m *Manager) Get(id string) *media.ConvertedMediaItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// TotalSize returns the summed byte size of all cached items.
func (m *Manager) TotalSize() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, it := range m.items {
		total += it.Size
	}
	return total
}
