package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	"sanad/internal/platform/middleware"
	dErrors "sanad/pkg/domain-errors"
)

// Service authenticates the single administrator account. Credentials come
// from configuration; there is no user store to enumerate.
type Service struct {
	adminEmail    string
	adminPassword string
	tokens        *JWTService
	logger        *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a Service.
func New(adminEmail, adminPassword string, tokens *JWTService, opts ...Option) *Service {
	s := &Service{
		adminEmail:    strings.ToLower(strings.TrimSpace(adminEmail)),
		adminPassword: adminPassword,
		tokens:        tokens,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the credentials and issues an access token. Both halves are
// compared in constant time and failures share one message, so the response
// confirms neither the email nor the password individually.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	if !emailOK || !passwordOK {
		s.logAudit(ctx, "admin_login_failed")
		return "", time.Time{}, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(email)
	if err != nil {
		return "", time.Time{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.logAudit(ctx, "admin_login", "subject", email)
	return token, expiresAt, nil
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
