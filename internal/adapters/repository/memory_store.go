package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

var _ domain.KVStore = (*InMemoryStore)(nil)

// InMemoryStore keeps values in process memory. Nothing survives a restart.
type InMemoryStore struct {
	store map[string][]byte

	mu sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		store: make(map[string][]byte),
	}
}

func (r *InMemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.store[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (r *InMemoryStore) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	r.store[key] = stored
	return nil
}
