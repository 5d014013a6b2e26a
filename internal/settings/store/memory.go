package store

import (
	"context"
	"sync"

	"sanad/internal/settings/models"
)

// InMemoryStore holds the settings document in memory.
type InMemoryStore struct {
	mu       sync.RWMutex
	settings *models.SiteSettings
}

// NewInMemoryStore creates a store seeded with default settings.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{settings: models.Default()}
}

// Get returns the current settings.
func (s *InMemoryStore) Get(_ context.Context) (*models.SiteSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := *s.settings
	return &clone, nil
}

// Replace swaps the settings document.
func (s *InMemoryStore) Replace(_ context.Context, settings *models.SiteSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *settings
	s.settings = &clone
	return nil
}
