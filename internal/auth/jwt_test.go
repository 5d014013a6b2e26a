package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	dErrors "sanad/pkg/domain-errors"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-signing-key", "sanad-test", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("admin@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	subject, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", subject)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService("test-signing-key", "sanad-test", -time.Minute)

	token, _, err := svc.GenerateAccessToken("admin@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	require.Equal(t, "token has expired", dErrors.MessageOf(err))
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	issuer := NewJWTService("key-one", "sanad-test", time.Hour)
	verifier := NewJWTService("key-two", "sanad-test", time.Hour)

	token, _, err := issuer.GenerateAccessToken("admin@example.com")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateTokenRejectsWrongAlgorithm(t *testing.T) {
	svc := NewJWTService("test-signing-key", "sanad-test", time.Hour)

	// An unsigned token must never validate, whatever its claims say.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-signing-key", "sanad-test", time.Hour)
	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
