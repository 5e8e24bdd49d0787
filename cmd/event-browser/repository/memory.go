package repository

import (
	"context"
	"sync"
)

// MemoryRepo keeps entries in process memory. Nothing survives a restart.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		entries: map[string]string{},
	}
}

func (r *MemoryRepo) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.entries[key]
	return value, ok, nil
}

func (r *MemoryRepo) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = value
	return nil
}

func (r *MemoryRepo) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key)
	return nil
}

func (r *MemoryRepo) Close() error {
	return nil
}
