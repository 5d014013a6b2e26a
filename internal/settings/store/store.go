package store

import (
	"context"

	"sanad/internal/settings/models"
)

// Store persists the singleton site settings document.
//
// Get never fails on a fresh installation: backends fall back to
// models.Default when nothing has been saved yet.
type Store interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Replace(ctx context.Context, settings *models.SiteSettings) error
}
