package store

import (
	"context"

	"sanad/internal/student/models"
)

// Store persists student certificate records.
//
// Stores are interface-driven so the lookup and verification logic stays
// testable and the persistence backend (memory, JSON file, Postgres) can be
// swapped without rewiring business code.
//
// Contract:
//   - Create fails with sentinel.ErrConflict when a record with the same id
//     (compared case-insensitively) already exists. This is the only place id
//     uniqueness is enforced; Update never re-checks because ids are immutable.
//   - Update and Delete fail with sentinel.ErrNotFound for unknown ids.
//   - List returns records newest-first, matching admin screens, and that
//     order is the iteration order lookup tie-breaking is defined against.
type Store interface {
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	Count(ctx context.Context) (int, error)
}
