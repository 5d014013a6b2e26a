package store

import "context"

// Item is the constraint content collections share: a string id plus a
// value-typed setter, so stores never alias caller memory.
type Item[T any] interface {
	GetID() string
	WithID(id string) T
}

// Store persists one content collection.
//
// Contract:
//   - Insert fails with sentinel.ErrConflict on a duplicate id.
//   - Update and Delete fail with sentinel.ErrNotFound for unknown ids.
//   - List preserves insertion order, which is the order items appear on
//     the public site.
type Store[T Item[T]] interface {
	Insert(ctx context.Context, item T) error
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (T, error)
	List(ctx context.Context) ([]T, error)
	Count(ctx context.Context) (int, error)
}
