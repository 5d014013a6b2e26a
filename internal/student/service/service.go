package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"

	"sanad/internal/platform/config"
	"sanad/internal/platform/metrics"
	"sanad/internal/platform/middleware"
	"sanad/internal/student/models"
	dErrors "sanad/pkg/domain-errors"
	"sanad/pkg/platform/sentinel"
)

type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	Count(ctx context.Context) (int, error)
}

// BlobStore persists uploaded certificate documents and returns a URL the
// record can carry.
type BlobStore interface {
	PutPDF(ctx context.Context, certificateID string, data []byte) (string, error)
}

// Service orchestrates student record management and identity resolution.
type Service struct {
	students StudentStore
	blobs    BlobStore
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
func New(students StudentStore, blobs BlobStore, opts ...Option) *Service {
	s := &Service{students: students, blobs: blobs}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Find resolves a lookup query to a student record.
//
// The query is trimmed and lowercased once, then records are scanned in
// store order (newest first) and the first whose lowercased certificate id
// or phone number equals the query wins. Id and phone share one input on
// the verification page, so both are checked against the same value.
func (s *Service) Find(ctx context.Context, query string) (*models.Student, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, dErrors.New(dErrors.CodeNotFound, "no certificate matches this query")
	}

	records, err := s.students.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search records")
	}
	for _, record := range records {
		if strings.ToLower(record.ID) == q || record.Phone == q {
			return record, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "no certificate matches this query")
}

// Get fetches a single record by certificate id, ignoring case.
func (s *Service) Get(ctx context.Context, id string) (*models.Student, error) {
	record, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "student not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load student")
	}
	return record, nil
}

// List returns all records newest-first.
func (s *Service) List(ctx context.Context) ([]*models.Student, error) {
	records, err := s.students.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list students")
	}
	return records, nil
}

// Count returns the number of records, for the dashboard.
func (s *Service) Count(ctx context.Context) (int, error) {
	count, err := s.students.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count students")
	}
	return count, nil
}

// Create registers a new student record.
func (s *Service) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	student.Normalize()
	if err := student.Validate(); err != nil {
		return nil, err
	}

	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "a student with this certificate id already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create student")
	}

	s.logAudit(ctx, "student_created", "certificate_id", student.ID)
	return student, nil
}

// Update replaces an existing record. The certificate id addresses the
// record and cannot change; a differing id in the payload is rejected
// rather than silently treated as a rename.
func (s *Service) Update(ctx context.Context, id string, student *models.Student) (*models.Student, error) {
	student.Normalize()
	if student.ID == "" {
		student.ID = id
	}
	if !strings.EqualFold(student.ID, id) {
		return nil, dErrors.New(dErrors.CodeValidation, "certificate id cannot be changed")
	}
	if err := student.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "student not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load student")
	}
	// Preserve the stored casing of the id.
	student.ID = existing.ID

	if err := s.students.Update(ctx, student); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "student not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update student")
	}

	s.logAudit(ctx, "student_updated", "certificate_id", student.ID)
	return student, nil
}

// Delete removes a student record.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "student not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete student")
	}
	s.logAudit(ctx, "student_deleted", "certificate_id", id)
	return nil
}

var pdfMagic = []byte("%PDF-")

// ValidatePDF checks an uploaded certificate document: PDF content and at
// most config.MaxCertificatePDFBytes.
func ValidatePDF(data []byte) error {
	if len(data) == 0 {
		return dErrors.New(dErrors.CodeValidation, "certificate file is required")
	}
	if len(data) > config.MaxCertificatePDFBytes {
		return dErrors.New(dErrors.CodeValidation, "certificate file must be 1 MB or less")
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return dErrors.New(dErrors.CodeValidation, "certificate file must be a PDF")
	}
	return nil
}

// AttachCertificate stores an official certificate document against the
// record with the given id and records its URL on the student.
func (s *Service) AttachCertificate(ctx context.Context, id string, data []byte) (*models.Student, error) {
	if err := ValidatePDF(data); err != nil {
		return nil, err
	}

	student, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.attach(ctx, student, data)
}

// AttachCertificateByIdentity is the upload flow keyed on certificate id
// plus phone number. Both must match the same record; a wrong phone is
// reported as not-found so the endpoint does not confirm which half was
// wrong.
func (s *Service) AttachCertificateByIdentity(ctx context.Context, id, phone string, data []byte) (*models.Student, error) {
	if err := ValidatePDF(data); err != nil {
		return nil, err
	}

	student, err := s.students.FindByID(ctx, strings.TrimSpace(id))
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load student")
	}
	if err != nil || student.Phone != strings.TrimSpace(phone) {
		return nil, dErrors.New(dErrors.CodeNotFound, "no student matches this certificate id and phone number")
	}
	return s.attach(ctx, student, data)
}

func (s *Service) attach(ctx context.Context, student *models.Student, data []byte) (*models.Student, error) {
	url, err := s.blobs.PutPDF(ctx, student.ID, data)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store certificate file")
	}

	student.CertificatePDFURL = url
	if err := s.students.Update(ctx, student); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update student")
	}

	s.logAudit(ctx, "certificate_uploaded", "certificate_id", student.ID)
	if s.metrics != nil {
		s.metrics.CertificateUploads.Inc()
	}
	return student, nil
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
