package engine

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"mediaforge/internal/logging"
)

// Manager owns the single shared engine instance. The instance is created
// lazily on first use; a failed load discards it so the next call retries
// from scratch.
type Manager struct {
	factory func() Engine

	mu     sync.Mutex
	engine Engine

	loads singleflight.Group
}

// NewManager builds a manager that constructs engines with factory.
func NewManager(factory func() Engine) *Manager {
	return &Manager{factory: factory}
}

// EnsureReady returns the loaded engine, constructing and loading it if
// needed. Concurrent callers during a load share the single in-flight
// attempt and its outcome.
func (m *Manager) EnsureReady(ctx context.Context) (Engine, error) {
	m.mu.Lock()
	eng := m.engine
	m.mu.Unlock()
	if eng != nil {
		return eng, nil
	}

	v, err, _ := m.loads.Do("load", func() (interface{}, error) {
		m.mu.Lock()
		eng := m.engine
		m.mu.Unlock()
		if eng != nil {
			return eng, nil
		}

		e := m.factory()
		e.OnLog(func(msg string) {
			logging.Debug("engine: %s", msg)
		})
		if err := e.Load(ctx); err != nil {
			// Discard the half-built instance; nothing is cached.
			return nil, fmt.Errorf("%w: %v", ErrEngineInit, err)
		}

		m.mu.Lock()
		m.engine = e
		m.mu.Unlock()
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Engine), nil
}

// Ready reports whether a loaded engine instance exists.
func (m *Manager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine != nil
}

// Terminate tears down the current instance, if any. A later EnsureReady
// reinitializes.
func (m *Manager) Terminate() {
	m.mu.Lock()
	eng := m.engine
	m.engine = nil
	m.mu.Unlock()

	if eng != nil {
		eng.Terminate()
	}
}
