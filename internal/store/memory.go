// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for development/testing, or when durability is not required.
//
// Characteristics:
//   - Stores encoded snapshots keyed by string in a map, so every Load goes
//     through the same decode path as the durable backends.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/hardle/internal/game"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex      // guards snaps map
	snaps map[string][]byte // keyed by save key
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{snaps: make(map[string][]byte)}
}

func (m *memory) Save(ctx context.Context, key string, s game.Snapshot) error {
	b, err := s.Encode()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[key] = b
	return nil
}

func (m *memory) Load(ctx context.Context, key string) (game.Snapshot, error) {
	m.mu.RLock()
	b, ok := m.snaps[key]
	m.mu.RUnlock()
	if !ok {
		return game.Snapshot{}, ErrNotFound
	}
	return game.DecodeSnapshot(b)
}

func (m *memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, key)
	return nil
}
