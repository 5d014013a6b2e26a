package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"sanad/internal/platform/middleware"
	"sanad/internal/settings/models"
	dErrors "sanad/pkg/domain-errors"
)

type SettingsStore interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Replace(ctx context.Context, settings *models.SiteSettings) error
}

// Service manages the site settings document.
type Service struct {
	store  SettingsStore
	logger *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a Service.
func New(store SettingsStore, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the current settings.
func (s *Service) Get(ctx context.Context) (*models.SiteSettings, error) {
	settings, err := s.store.Get(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load settings")
	}
	return settings, nil
}

// Replace validates and stores a full settings document. Embedded feature
// and why-choose-us items get ids assigned when the admin form omits them.
func (s *Service) Replace(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error) {
	settings.NameBN = strings.TrimSpace(settings.NameBN)
	settings.NameEN = strings.TrimSpace(settings.NameEN)
	settings.Email = strings.TrimSpace(settings.Email)

	if settings.NameBN == "" || settings.NameEN == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "site name is required in both languages")
	}
	if settings.Email != "" && !govalidator.IsEmail(settings.Email) {
		return nil, dErrors.New(dErrors.CodeValidation, "email address is invalid")
	}

	if settings.Features == nil {
		settings.Features = []models.Feature{}
	}
	for i := range settings.Features {
		if settings.Features[i].ID == "" {
			settings.Features[i].ID = uuid.New().String()
		}
	}
	if settings.WhyChooseUs == nil {
		settings.WhyChooseUs = []models.WhyChooseUsItem{}
	}
	for i := range settings.WhyChooseUs {
		if settings.WhyChooseUs[i].ID == "" {
			settings.WhyChooseUs[i].ID = uuid.New().String()
		}
	}

	if err := s.store.Replace(ctx, settings); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save settings")
	}

	s.logAudit(ctx, "settings_updated")
	return settings, nil
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}
