// Package verification is the public certificate verification entry point:
// the page a QR scan lands on, and the lookup behind the search box.
package verification

import (
	"context"
	"log/slog"

	"sanad/internal/platform/metrics"
	"sanad/internal/platform/middleware"
	studentmodels "sanad/internal/student/models"
	dErrors "sanad/pkg/domain-errors"
)

// Lookup states.
const (
	StatusIdle     = "idle"
	StatusFound    = "found"
	StatusNotFound = "not_found"
)

// Artifact modes for a found record.
const (
	ModeUploaded = "uploaded"
	ModeComposed = "composed"
)

type Resolver interface {
	Find(ctx context.Context, query string) (*studentmodels.Student, error)
}

// Result is the outcome of one verification lookup.
type Result struct {
	Status  string
	Mode    string
	Student *studentmodels.Student
}

// Service runs verification lookups. Every lookup re-runs the resolver
// against current store state; nothing about a previous lookup is cached,
// so a record deleted a second ago verifies as not found.
type Service struct {
	resolver Resolver
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(resolver Resolver, opts ...Option) *Service {
	s := &Service{resolver: resolver}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Verify resolves a query. An empty query is the idle state, not an error:
// the verification page renders its search form from it.
func (s *Service) Verify(ctx context.Context, query string) (*Result, error) {
	if query == "" {
		return &Result{Status: StatusIdle}, nil
	}

	if s.metrics != nil {
		s.metrics.VerificationLookups.Inc()
	}

	record, err := s.resolver.Find(ctx, query)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			if s.metrics != nil {
				s.metrics.VerificationNotFound.Inc()
			}
			s.logLookup(ctx, query, StatusNotFound)
			return &Result{Status: StatusNotFound}, nil
		}
		return nil, err
	}

	mode := ModeComposed
	if record.HasUploadedCertificate() {
		// An officially uploaded document always outranks composition.
		mode = ModeUploaded
	}

	if s.metrics != nil {
		s.metrics.VerificationFound.Inc()
	}
	s.logLookup(ctx, query, StatusFound, "certificate_id", record.ID, "mode", mode)
	return &Result{Status: StatusFound, Mode: mode, Student: record}, nil
}

func (s *Service) logLookup(ctx context.Context, query, status string, attributes ...any) {
	if s.logger == nil {
		return
	}
	args := append(attributes, "query", query, "status", status, "log_type", "audit")
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	s.logger.InfoContext(ctx, "verification lookup", args...)
}
