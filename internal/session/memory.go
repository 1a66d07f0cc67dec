package session

import (
	"context"
	"sync"
)

// MemoryPersister is an in-memory Persister for tests and single-node dev
// runs where Redis is not configured.
type MemoryPersister struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
}

// NewMemoryPersister creates an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{snaps: make(map[string]Snapshot)}
}

func (m *MemoryPersister) Save(_ context.Context, id string, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	m.snaps[id] = snap
	return nil
}

func (m *MemoryPersister) Load(_ context.Context, id string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snaps[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	return snap, nil
}

func (m *MemoryPersister) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, id)
	return nil
}
