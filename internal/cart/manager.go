package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Manager hands out the per-session cart stores. Each session gets exactly
// one Store instance for the process lifetime, so every request sees the
// same in-memory cart.
type Manager struct {
	snaps  SnapshotStore
	logger *zap.Logger

	mu     sync.RWMutex
	stores map[string]*Store
	sfg    singleflight.Group // collapses concurrent first-loads of a session
}

func NewManager(snaps SnapshotStore, logger *zap.Logger) *Manager {
	return &Manager{
		snaps:  snaps,
		logger: logger,
		stores: make(map[string]*Store),
	}
}

// Session returns the cart store for a session, creating and restoring it on
// first use. Concurrent requests for a fresh session share one snapshot load.
func (m *Manager) Session(ctx context.Context, sessionID string) *Store {
	m.mu.RLock()
	store, ok := m.stores[sessionID]
	m.mu.RUnlock()
	if ok {
		return store
	}

	v, _, _ := m.sfg.Do(sessionID, func() (interface{}, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if existing, ok := m.stores[sessionID]; ok {
			return existing, nil
		}
		created := NewStore(ctx, sessionID, m.snaps, m.logger)
		m.stores[sessionID] = created
		return created, nil
	})

	return v.(*Store)
}
