package memory

import (
	"context"
	"sync"
)

// PreferencesRepository implements domain.Preferences in process memory
// for tests and demo mode
type PreferencesRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewPreferencesRepository creates an empty in-memory repository
func NewPreferencesRepository() *PreferencesRepository {
	return &PreferencesRepository{values: make(map[string]string)}
}

// Get returns the value stored under key
func (r *PreferencesRepository) Get(ctx context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok, nil
}

// PutAll stores every pair under one lock
func (r *PreferencesRepository) PutAll(ctx context.Context, values map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range values {
		r.values[k] = v
	}
	return nil
}

// Delete removes the keys under one lock
func (r *PreferencesRepository) Delete(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}

// Health always returns nil in memory mode
func (r *PreferencesRepository) Health(ctx context.Context) error {
	return nil
}
