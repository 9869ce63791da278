package repositories

import (
	"context"
	"sync"
)

type MemoryCartRepository struct {
	mu      sync.RWMutex
	records map[string]string
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{records: make(map[string]string)}
}

func (r *MemoryCartRepository) Get(ctx context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.records[key]
	return value, ok, nil
}

func (r *MemoryCartRepository) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[key] = value
	return nil
}

func (r *MemoryCartRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, key)
	return nil
}
