package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AaronCarney/collabboard-sub001/pkg/auth"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTValidator_ValidToken(t *testing.T) {
	// Arrange
	validator, err := auth.NewJWTValidator(testSecret)
	require.NoError(t, err)
	token := signToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	// Act
	userID, err := validator.Validate(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestJWTValidator_BearerPrefixStripped(t *testing.T) {
	validator, err := auth.NewJWTValidator(testSecret)
	require.NoError(t, err)
	token := signToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	userID, err := validator.Validate("Bearer " + token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestJWTValidator_ExpiredToken(t *testing.T) {
	validator, err := auth.NewJWTValidator(testSecret)
	require.NoError(t, err)
	token := signToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	_, err = validator.Validate(token)

	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestJWTValidator_WrongSecret(t *testing.T) {
	validator, err := auth.NewJWTValidator(testSecret)
	require.NoError(t, err)
	token := signToken(t, "a-different-secret", jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	_, err = validator.Validate(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTValidator_MissingToken(t *testing.T) {
	validator, err := auth.NewJWTValidator(testSecret)
	require.NoError(t, err)

	_, err = validator.Validate("")

	assert.ErrorIs(t, err, auth.ErrMissingToken)
}

func TestJWTValidator_MissingSubject(t *testing.T) {
	validator, err := auth.NewJWTValidator(testSecret)
	require.NoError(t, err)
	token := signToken(t, testSecret, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	_, err = validator.Validate(token)

	assert.ErrorIs(t, err, auth.ErrInvalidClaims)
}

func TestNewJWTValidator_EmptySecretRejected(t *testing.T) {
	_, err := auth.NewJWTValidator("")

	assert.Error(t, err)
}
