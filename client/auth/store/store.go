package store

import (
	"sync"

	"golang.org/x/oauth2"
)

// Store is a pluggable persistence layer for the current credential pair.
// The in-memory default is fine for tests; swap with FileStore to survive
// process restarts.
//
// At most one pair is current at a time: Save replaces it wholesale, Clear
// removes it, and readers never observe half of a newly written pair.
type Store interface {
	// Load returns the current pair, or nil when none is stored. A durable
	// read failure is reported as "no stored credential", never as an error:
	// the caller falls back to the signed-out state.
	Load() (*oauth2.Token, error)
	// Save atomically replaces the current pair.
	Save(token *oauth2.Token) error
	// Clear atomically removes the current pair. Clearing an empty store is
	// a no-op.
	Clear() error
}

type memoryStore struct {
	mu    sync.RWMutex
	token *oauth2.Token
}

// NewMemoryStore returns a Store that keeps the pair in process memory only.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) Load() (*oauth2.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *memoryStore) Save(token *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
	return nil
}
