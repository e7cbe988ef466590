package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryRepository implements Repository with a map
type MemoryRepository[T Entity] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
}

type entry[T Entity] struct {
	value   T
	created time.Time
}

// NewMemoryRepository creates an empty repository
func NewMemoryRepository[T Entity]() *MemoryRepository[T] {
	return &MemoryRepository[T]{
		entries: make(map[string]entry[T]),
	}
}

// Create stores v under its id
func (r *MemoryRepository[T]) Create(v T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := v.ID()
	if _, exists := r.entries[id]; exists {
		return fmt.Errorf("entry %s already exists", id)
	}
	r.entries[id] = entry[T]{value: v, created: time.Now()}
	return nil
}

// Get returns the entry with the given id
func (r *MemoryRepository[T]) Get(id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return e.value, nil
}

// Delete removes and returns the entry with the given id
func (r *MemoryRepository[T]) Delete(id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	delete(r.entries, id)
	return e.value, nil
}

// List returns all entries, oldest first
func (r *MemoryRepository[T]) List() []T {
	r.mu.RLock()
	all := make([]entry[T], 0, len(r.entries))
	for _, e := range r.entries {
		all = append(all, e)
	}
	r.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].created.Before(all[j].created)
	})

	out := make([]T, len(all))
	for i, e := range all {
		out[i] = e.value
	}
	return out
}

// Len returns the number of entries
func (r *MemoryRepository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
