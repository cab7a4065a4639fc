package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("test-secret", time.Hour)
	userID := uuid.New()

	token, err := s.GenerateToken(userID, "a@example.com", "Alice", true, "v1")
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "v1", claims.TokenVersion)
}

func TestSigner_RejectsWrongSecret(t *testing.T) {
	token, err := NewSigner("one", time.Hour).GenerateToken(uuid.New(), "a@example.com", "A", false, "v1")
	require.NoError(t, err)

	_, err = NewSigner("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_RejectsExpired(t *testing.T) {
	s := NewSigner("test-secret", time.Minute)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := s.GenerateToken(uuid.New(), "a@example.com", "A", false, "v1")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{UserID: uuid.New(), RegisteredClaims: gojwt.RegisteredClaims{Issuer: issuer}}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewSigner("test-secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_MissingToken(t *testing.T) {
	_, err := NewSigner("test-secret", time.Hour).ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}
