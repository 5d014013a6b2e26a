package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"sanad/pkg/platform/sentinel"
)

// PostgresStore persists one collection in a shared content_items table.
// Items are stored as JSONB keyed by (collection, item id); position is a
// sequence so List preserves insertion order. One table serves every
// collection because items are only ever addressed by id and listed whole.
type PostgresStore[T Item[T]] struct {
	db         *sql.DB
	collection string
}

// NewPostgresStore constructs a PostgreSQL-backed store for one collection.
func NewPostgresStore[T Item[T]](db *sql.DB, collection string) *PostgresStore[T] {
	return &PostgresStore[T]{db: db, collection: collection}
}

const pgUniqueViolation = "23505"

func (s *PostgresStore[T]) Insert(ctx context.Context, item T) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode %s item: %w", s.collection, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO content_items (collection, item_id, data)
		VALUES ($1, $2, $3)`,
		s.collection, item.GetID(), data)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert %s item: %w", s.collection, err)
	}
	return nil
}

func (s *PostgresStore[T]) Update(ctx context.Context, item T) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode %s item: %w", s.collection, err)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE content_items SET data = $3
		WHERE collection = $1 AND item_id = $2`,
		s.collection, item.GetID(), data)
	if err != nil {
		return fmt.Errorf("update %s item: %w", s.collection, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s item: %w", s.collection, err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore[T]) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM content_items
		WHERE collection = $1 AND item_id = $2`,
		s.collection, id)
	if err != nil {
		return fmt.Errorf("delete %s item: %w", s.collection, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s item: %w", s.collection, err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM content_items
		WHERE collection = $1 AND item_id = $2`,
		s.collection, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, sentinel.ErrNotFound
		}
		return zero, fmt.Errorf("find %s item: %w", s.collection, err)
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return zero, fmt.Errorf("decode %s item: %w", s.collection, err)
	}
	return item, nil
}

func (s *PostgresStore[T]) List(ctx context.Context) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT data FROM content_items
		WHERE collection = $1 ORDER BY position ASC`,
		s.collection)
	if err != nil {
		return nil, fmt.Errorf("list %s items: %w", s.collection, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("list %s items: %w", s.collection, err)
		}
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("decode %s item: %w", s.collection, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s items: %w", s.collection, err)
	}
	return out, nil
}

func (s *PostgresStore[T]) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT count(*) FROM content_items WHERE collection = $1`,
		s.collection).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count %s items: %w", s.collection, err)
	}
	return count, nil
}
