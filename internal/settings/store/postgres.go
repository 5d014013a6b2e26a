package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"sanad/internal/settings/models"
)

// PostgresStore keeps the settings document as a single JSONB row.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed settings store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get returns the stored settings, or defaults when no row exists yet.
func (s *PostgresStore) Get(ctx context.Context) (*models.SiteSettings, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM site_settings WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	var settings models.SiteSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &settings, nil
}

// Replace upserts the settings row.
func (s *PostgresStore) Replace(ctx context.Context, settings *models.SiteSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO site_settings (id, data) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		data)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
