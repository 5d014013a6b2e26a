package store

import (
	"context"
	"sync"

	"sanad/pkg/platform/sentinel"
)

// InMemoryStore is a thread-safe in-memory Store for one collection.
type InMemoryStore[T Item[T]] struct {
	mu    sync.RWMutex
	items []T
	index map[string]int
}

// NewInMemoryStore creates an empty in-memory collection store.
func NewInMemoryStore[T Item[T]]() *InMemoryStore[T] {
	return &InMemoryStore[T]{index: make(map[string]int)}
}

// Seed replaces the collection contents, keeping the given order.
func (s *InMemoryStore[T]) Seed(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]T(nil), items...)
	s.index = make(map[string]int, len(items))
	for i, item := range s.items {
		s.index[item.GetID()] = i
	}
}

// Insert appends a new item to the collection.
func (s *InMemoryStore[T]) Insert(_ context.Context, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[item.GetID()]; exists {
		return sentinel.ErrConflict
	}
	s.index[item.GetID()] = len(s.items)
	s.items = append(s.items, item)
	return nil
}

// Update replaces the item with the same id in place.
func (s *InMemoryStore[T]) Update(_ context.Context, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, exists := s.index[item.GetID()]
	if !exists {
		return sentinel.ErrNotFound
	}
	s.items[i] = item
	return nil
}

// Delete removes the item with the given id.
func (s *InMemoryStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, exists := s.index[id]
	if !exists {
		return sentinel.ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].GetID()] = j
	}
	return nil
}

// FindByID looks an item up by id.
func (s *InMemoryStore[T]) FindByID(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, exists := s.index[id]
	if !exists {
		var zero T
		return zero, sentinel.ErrNotFound
	}
	return s.items[i], nil
}

// List returns the collection in insertion order.
func (s *InMemoryStore[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.items...), nil
}

// Count returns the number of items.
func (s *InMemoryStore[T]) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}
