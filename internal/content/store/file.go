package store

import (
	"context"
	"fmt"
	"path/filepath"

	"sanad/pkg/platform/jsonfile"
)

// FileStore persists one collection to a JSON file, delegating reads to an
// in-memory store and rewriting the file after every mutation.
type FileStore[T Item[T]] struct {
	mem  *InMemoryStore[T]
	repo *jsonfile.Repository
}

// NewFileStore opens (or creates) <name>.json under dataDir.
func NewFileStore[T Item[T]](dataDir, name string) (*FileStore[T], error) {
	repo, err := jsonfile.New(filepath.Join(dataDir, name+".json"))
	if err != nil {
		return nil, err
	}

	var items []T
	if _, err := repo.Load(&items); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	mem := NewInMemoryStore[T]()
	mem.Seed(items)
	return &FileStore[T]{mem: mem, repo: repo}, nil
}

func (s *FileStore[T]) persist(ctx context.Context) error {
	items, err := s.mem.List(ctx)
	if err != nil {
		return err
	}
	return s.repo.Save(items)
}

func (s *FileStore[T]) Insert(ctx context.Context, item T) error {
	if err := s.mem.Insert(ctx, item); err != nil {
		return err
	}
	return s.persist(ctx)
}

func (s *FileStore[T]) Update(ctx context.Context, item T) error {
	if err := s.mem.Update(ctx, item); err != nil {
		return err
	}
	return s.persist(ctx)
}

func (s *FileStore[T]) Delete(ctx context.Context, id string) error {
	if err := s.mem.Delete(ctx, id); err != nil {
		return err
	}
	return s.persist(ctx)
}

func (s *FileStore[T]) FindByID(ctx context.Context, id string) (T, error) {
	return s.mem.FindByID(ctx, id)
}

func (s *FileStore[T]) List(ctx context.Context) ([]T, error) {
	return s.mem.List(ctx)
}

func (s *FileStore[T]) Count(ctx context.Context) (int, error) {
	return s.mem.Count(ctx)
}
