package store

import (
	"context"
	"fmt"
	"path/filepath"

	"sanad/internal/student/models"
	"sanad/pkg/platform/jsonfile"
)

// FileStore is a Store persisted to a JSON file. It wraps an InMemoryStore
// for reads and rewrites the file after every mutation, which is plenty for a
// single training center's record volume.
type FileStore struct {
	mem  *InMemoryStore
	repo *jsonfile.Repository
}

// NewFileStore opens (or creates) the student records file under dataDir.
func NewFileStore(dataDir string) (*FileStore, error) {
	repo, err := jsonfile.New(filepath.Join(dataDir, "students.json"))
	if err != nil {
		return nil, err
	}

	var records []*models.Student
	if _, err := repo.Load(&records); err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}

	mem := NewInMemoryStore()
	// Stored newest-first; replay oldest-first to rebuild the same order.
	for i := len(records) - 1; i >= 0; i-- {
		if err := mem.Create(context.Background(), records[i]); err != nil {
			return nil, fmt.Errorf("load students: duplicate id %q", records[i].ID)
		}
	}

	return &FileStore{mem: mem, repo: repo}, nil
}

func (s *FileStore) persist(ctx context.Context) error {
	records, err := s.mem.List(ctx)
	if err != nil {
		return err
	}
	return s.repo.Save(records)
}

// Create adds a new record and persists the file.
func (s *FileStore) Create(ctx context.Context, student *models.Student) error {
	if err := s.mem.Create(ctx, student); err != nil {
		return err
	}
	return s.persist(ctx)
}

// Update replaces an existing record and persists the file.
func (s *FileStore) Update(ctx context.Context, student *models.Student) error {
	if err := s.mem.Update(ctx, student); err != nil {
		return err
	}
	return s.persist(ctx)
}

// Delete removes a record and persists the file.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := s.mem.Delete(ctx, id); err != nil {
		return err
	}
	return s.persist(ctx)
}

// FindByID looks a record up by id, ignoring case.
func (s *FileStore) FindByID(ctx context.Context, id string) (*models.Student, error) {
	return s.mem.FindByID(ctx, id)
}

// List returns all records newest-first.
func (s *FileStore) List(ctx context.Context) ([]*models.Student, error) {
	return s.mem.List(ctx)
}

// Count returns the number of records.
func (s *FileStore) Count(ctx context.Context) (int, error) {
	return s.mem.Count(ctx)
}
