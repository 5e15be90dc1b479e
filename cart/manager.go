package cart

import (
	"sync"
	"time"

	"atelier.GO/core/kv"
)

// Manager hands out one Store per visitor session, namespacing the storage
// key as "cart:<session>". Stores are cached in memory and evicted after
// sitting idle; the persisted cart survives eviction and rehydrates on the
// next visit.
type Manager struct {
	mu     sync.Mutex
	kv     kv.Store
	stores map[string]*managedStore
}

type managedStore struct {
	store    *Store
	lastSeen time.Time
}

func NewManager(store kv.Store) *Manager {
	return &Manager{
		kv:     store,
		stores: make(map[string]*managedStore),
	}
}

// Get returns the session's cart store, hydrating it on first access.
func (m *Manager) Get(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ms, ok := m.stores[sessionID]; ok {
		ms.lastSeen = time.Now()
		return ms.store
	}
	s := NewStore(m.kv, "cart:"+sessionID)
	m.stores[sessionID] = &managedStore{store: s, lastSeen: time.Now()}
	return s
}

// SessionCount returns the number of in-memory session stores.
func (m *Manager) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}

// EvictIdle drops in-memory stores idle longer than maxIdle and returns how
// many were evicted. Persisted carts are untouched.
func (m *Manager) EvictIdle(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	evicted := 0
	for id, ms := range m.stores {
		if ms.lastSeen.Before(cutoff) {
			delete(m.stores, id)
			evicted++
		}
	}
	return evicted
}
