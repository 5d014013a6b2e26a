package store

import (
	"context"
	"strings"
	"sync"

	"sanad/internal/student/models"
	"sanad/pkg/platform/sentinel"
)

// InMemoryStore is a thread-safe in-memory Store used in tests and in the
// zero-config dev setup.
type InMemoryStore struct {
	mu sync.RWMutex
	// records is kept newest-first so List needs no sorting.
	records []*models.Student
	// byID maps lowercased id to the record, enforcing case-insensitive
	// uniqueness.
	byID map[string]*models.Student
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byID: make(map[string]*models.Student)}
}

// Create adds a new record. Fails with sentinel.ErrConflict when the id is
// already taken, ignoring case.
func (s *InMemoryStore) Create(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(student.ID)
	if _, exists := s.byID[key]; exists {
		return sentinel.ErrConflict
	}

	clone := *student
	s.records = append([]*models.Student{&clone}, s.records...)
	s.byID[key] = &clone
	return nil
}

// Update replaces the record with the same id in place, preserving its
// position in the listing order.
func (s *InMemoryStore) Update(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(student.ID)
	existing, exists := s.byID[key]
	if !exists {
		return sentinel.ErrNotFound
	}

	*existing = *student
	return nil
}

// Delete removes the record with the given id.
func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(id)
	record, exists := s.byID[key]
	if !exists {
		return sentinel.ErrNotFound
	}

	delete(s.byID, key)
	for i, r := range s.records {
		if r == record {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	return nil
}

// FindByID looks a record up by id, ignoring case.
func (s *InMemoryStore) FindByID(_ context.Context, id string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.byID[strings.ToLower(id)]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

// List returns all records newest-first.
func (s *InMemoryStore) List(_ context.Context) ([]*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Student, len(s.records))
	for i, r := range s.records {
		clone := *r
		out[i] = &clone
	}
	return out, nil
}

// Count returns the number of records.
func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
