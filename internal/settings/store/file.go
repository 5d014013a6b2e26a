package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"sanad/internal/settings/models"
	"sanad/pkg/platform/jsonfile"
)

// FileStore persists the settings document to a JSON file.
type FileStore struct {
	mu       sync.RWMutex
	settings *models.SiteSettings
	repo     *jsonfile.Repository
}

// NewFileStore opens (or creates) settings.json under dataDir.
func NewFileStore(dataDir string) (*FileStore, error) {
	repo, err := jsonfile.New(filepath.Join(dataDir, "settings.json"))
	if err != nil {
		return nil, err
	}

	settings := models.Default()
	if _, err := repo.Load(settings); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	return &FileStore{settings: settings, repo: repo}, nil
}

// Get returns the current settings.
func (s *FileStore) Get(_ context.Context) (*models.SiteSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := *s.settings
	return &clone, nil
}

// Replace swaps the settings document and persists the file.
func (s *FileStore) Replace(_ context.Context, settings *models.SiteSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(settings); err != nil {
		return err
	}
	clone := *settings
	s.settings = &clone
	return nil
}
