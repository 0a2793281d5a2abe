package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepmind/neetprep-backend/internal/config"
)

func authConfig(secret string) *config.Config {
	return &config.Config{
		JWTSecret: secret,
		JWTExpiry: time.Hour,
	}
}

func TestDeviceToken_RoundTrip(t *testing.T) {
	svc := NewAuthService(authConfig("test-secret"))

	token, userID, err := svc.GenerateDeviceToken("device-abc")
	require.NoError(t, err)
	assert.Equal(t, "device-abc", userID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "device-abc", claims.UserID)
	assert.Equal(t, TokenTypeDevice, claims.TokenType)
}

func TestDeviceToken_EmptyDeviceIDGetsGenerated(t *testing.T) {
	svc := NewAuthService(authConfig("test-secret"))

	_, userID, err := svc.GenerateDeviceToken("")
	require.NoError(t, err)
	assert.NotEmpty(t, userID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewAuthService(authConfig("secret-a"))
	verifier := NewAuthService(authConfig("secret-b"))

	token, _, err := issuer.GenerateDeviceToken("device-abc")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewAuthService(authConfig("test-secret"))

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewAuthService(&config.Config{JWTSecret: "test-secret", JWTExpiry: -time.Minute})

	token, _, err := svc.GenerateDeviceToken("device-abc")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
