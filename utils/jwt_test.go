package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("dgrace", "DOCTOR", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := ExtractUsernameFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "dgrace", username)
}

func TestExpiredTokenRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("dgrace", "DOCTOR", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractUsernameFromToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	_, err := ExtractUsernameFromToken("not.a.token")
	assert.Error(t, err)
}

func TestTamperedSecretRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := GenerateToken("dgrace", "DOCTOR", time.Hour)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "other-secret"
	defer func() { config.AppConfig.JWTSecret = "test-secret" }()

	_, err = ExtractUsernameFromToken(token)
	assert.Error(t, err)
}
