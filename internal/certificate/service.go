package certificate

import (
	"context"
	"log/slog"

	"sanad/internal/i18n"
	"sanad/internal/platform/metrics"
	settingsmodels "sanad/internal/settings/models"
	studentmodels "sanad/internal/student/models"
	dErrors "sanad/pkg/domain-errors"
)

type StudentResolver interface {
	Get(ctx context.Context, id string) (*studentmodels.Student, error)
}

type SettingsProvider interface {
	Get(ctx context.Context) (*settingsmodels.SiteSettings, error)
}

// Service is the export pipeline: it turns a certificate id into PDF bytes,
// either by composing and rasterizing an artifact or by streaming the
// uploaded original unchanged.
type Service struct {
	students StudentResolver
	settings SettingsProvider
	composer *Composer
	fetcher  *AssetFetcher
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type ServiceOption func(s *Service)

func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithServiceMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService constructs the export pipeline.
func NewService(students StudentResolver, settings SettingsProvider, composer *Composer, fetcher *AssetFetcher, opts ...ServiceOption) *Service {
	s := &Service{students: students, settings: settings, composer: composer, fetcher: fetcher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExportComposed composes the certificate for a record in the given
// language and returns the exported PDF. Works for every record, whether or
// not an original was uploaded; the verification page only offers it for
// records without one.
func (s *Service) ExportComposed(ctx context.Context, id string, lang i18n.Lang) ([]byte, string, error) {
	record, err := s.students.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	siteSettings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, "", err
	}

	artifact, err := s.composer.Compose(ctx, record, siteSettings, lang)
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "certificate composition failed",
				"certificate_id", id, "lang", string(lang), "error", err)
		}
		return nil, "", err
	}

	data, filename, err := ExportPDF(artifact)
	if err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to export certificate")
	}
	if s.metrics != nil {
		s.metrics.CertificatesExported.Inc()
	}
	return data, filename, nil
}

// ExportOriginal streams the uploaded certificate document unchanged.
func (s *Service) ExportOriginal(ctx context.Context, id string) ([]byte, string, error) {
	record, err := s.students.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !record.HasUploadedCertificate() {
		return nil, "", dErrors.New(dErrors.CodeNotFound, "no uploaded certificate for this student")
	}

	data, err := s.fetcher.Fetch(ctx, record.CertificatePDFURL)
	if err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load certificate document")
	}
	if s.metrics != nil {
		s.metrics.OriginalDownloads.Inc()
	}
	return data, OriginalFilename(record.ID), nil
}
