package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	dErrors "sanad/pkg/domain-errors"
)

func newAuthService() *Service {
	tokens := NewJWTService("test-signing-key", "sanad-test", time.Hour)
	return New("Admin@Example.com", "correct horse battery staple", tokens)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		token, expiresAt, err := svc.Login(ctx, "admin@example.com", "correct horse battery staple")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.True(t, expiresAt.After(time.Now()))
	})

	t.Run("email comparison ignores case and whitespace", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "  ADMIN@example.COM ", "correct horse battery staple")
		require.NoError(t, err)
	})

	t.Run("wrong password and wrong email share one message", func(t *testing.T) {
		_, _, errPassword := svc.Login(ctx, "admin@example.com", "wrong")
		_, _, errEmail := svc.Login(ctx, "other@example.com", "correct horse battery staple")

		require.True(t, dErrors.HasCode(errPassword, dErrors.CodeUnauthorized))
		require.True(t, dErrors.HasCode(errEmail, dErrors.CodeUnauthorized))
		require.Equal(t, dErrors.MessageOf(errPassword), dErrors.MessageOf(errEmail))
	})
}

func TestHandleLogin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := chi.NewRouter()
	NewHandler(newAuthService(), logger).Register(router)

	postLogin := func(t *testing.T, body string) *httptest.ResponseRecorder {
		t.Helper()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString(body))
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("returns a bearer token", func(t *testing.T) {
		rec := postLogin(t, `{"email":"admin@example.com","password":"correct horse battery staple"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp loginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "Bearer", resp.TokenType)
		require.NotEmpty(t, resp.AccessToken)
		_, err := time.Parse(time.RFC3339, resp.ExpiresAt)
		require.NoError(t, err)
	})

	t.Run("rejects bad credentials with 401", func(t *testing.T) {
		rec := postLogin(t, `{"email":"admin@example.com","password":"wrong"}`)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects malformed bodies with 400", func(t *testing.T) {
		rec := postLogin(t, `{"email":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
