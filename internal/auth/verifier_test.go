package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	v := NewJWTVerifier(testSecret, "")
	token := signToken(t, jwt.MapClaims{
		"uid":   "uid-1",
		"email": "dana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	identity, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", identity.UID)
	assert.Equal(t, "dana@example.com", identity.Email)
}

func TestVerifyFallsBackToSubject(t *testing.T) {
	v := NewJWTVerifier(testSecret, "")
	token := signToken(t, jwt.MapClaims{
		"sub": "uid-2",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	identity, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-2", identity.UID)
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	v := NewJWTVerifier(testSecret, "")
	token := signToken(t, jwt.MapClaims{
		"uid": "uid-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, "other-secret")

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	v := NewJWTVerifier(testSecret, "")
	token := signToken(t, jwt.MapClaims{
		"uid": "uid-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingUID(t *testing.T) {
	v := NewJWTVerifier(testSecret, "")
	token := signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyEmptyToken(t *testing.T) {
	v := NewJWTVerifier(testSecret, "")
	_, err := v.Verify("")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestVerifyEnforcesIssuer(t *testing.T) {
	v := NewJWTVerifier(testSecret, "gratify-idp")
	token := signToken(t, jwt.MapClaims{
		"uid": "uid-1",
		"iss": "someone-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
