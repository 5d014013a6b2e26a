// Package jsonfile is a small load/save repository over a JSON file. It backs
// the file storage mode, which keeps a single-host deployment dependency-free
// while the store interfaces stay swappable for Postgres.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Repository persists one value at a fixed path. Saves are atomic
// (write-temp-then-rename) so a crash mid-write never truncates the data.
type Repository struct {
	path string
}

// New creates a repository rooted at path, creating parent directories.
func New(path string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Repository{path: path}, nil
}

// Load reads the stored value into v. A missing file is not an error; v is
// left untouched and ok is false.
func (r *Repository) Load(v any) (ok bool, err error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", r.path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return true, nil
}

// Save writes v to the file atomically.
func (r *Repository) Save(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.path, err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
