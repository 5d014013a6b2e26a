package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"sanad/internal/content/store"
	"sanad/internal/platform/middleware"
	dErrors "sanad/pkg/domain-errors"
	"sanad/pkg/platform/sentinel"
)

// Service manages one content collection. The same implementation serves
// slides, notices, trainers, courses, gallery items, videos and training
// subjects; only the element type and collection name differ.
type Service[T store.Item[T]] struct {
	name   string
	items  store.Store[T]
	logger *slog.Logger
}

// New constructs a Service for a named collection. A nil logger disables
// audit logging.
func New[T store.Item[T]](name string, items store.Store[T], logger *slog.Logger) *Service[T] {
	return &Service[T]{name: name, items: items, logger: logger}
}

// List returns the collection in display order.
func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list "+s.name)
	}
	return items, nil
}

// Get fetches one item by id.
func (s *Service[T]) Get(ctx context.Context, id string) (T, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		var zero T
		if errors.Is(err, sentinel.ErrNotFound) {
			return zero, dErrors.New(dErrors.CodeNotFound, "item not found")
		}
		return zero, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load item")
	}
	return item, nil
}

// Count returns the number of items, for the dashboard.
func (s *Service[T]) Count(ctx context.Context) (int, error) {
	count, err := s.items.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count "+s.name)
	}
	return count, nil
}

// Create adds an item, assigning a fresh id. Client-supplied ids are
// ignored so the collection can never be used to probe for existing ones.
func (s *Service[T]) Create(ctx context.Context, item T) (T, error) {
	item = item.WithID(uuid.New().String())
	if err := s.items.Insert(ctx, item); err != nil {
		var zero T
		return zero, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create item")
	}
	s.logAudit(ctx, s.name+"_created", "item_id", item.GetID())
	return item, nil
}

// Update replaces the item addressed by id.
func (s *Service[T]) Update(ctx context.Context, id string, item T) (T, error) {
	item = item.WithID(id)
	if err := s.items.Update(ctx, item); err != nil {
		var zero T
		if errors.Is(err, sentinel.ErrNotFound) {
			return zero, dErrors.New(dErrors.CodeNotFound, "item not found")
		}
		return zero, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update item")
	}
	s.logAudit(ctx, s.name+"_updated", "item_id", id)
	return item, nil
}

// Delete removes the item with the given id.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "item not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete item")
	}
	s.logAudit(ctx, s.name+"_deleted", "item_id", id)
	return nil
}

func (s *Service[T]) logAudit(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}
