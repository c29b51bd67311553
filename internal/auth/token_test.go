// ABOUTME: Tests for session token generation and verification
// ABOUTME: Covers expiry, tampering, and secret length enforcement

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSecret is a 32-byte secret that meets MinSecretLength requirement.
var testSecret = []byte("session-token-test-secret-32byte")

func TestNewTokensRejectsShortSecret(t *testing.T) {
	_, err := NewTokens([]byte("short"))
	require.ErrorIs(t, err, ErrSecretTooShort)
}

func TestGenerateAndVerify(t *testing.T) {
	tokens, err := NewTokens(testSecret)
	require.NoError(t, err)

	now := time.Now()
	token, expiresAt, err := tokens.Generate(now, 24*time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, now.Add(24*time.Hour), expiresAt, time.Second)

	require.NoError(t, tokens.Verify(token))
}

func TestVerifyExpiredToken(t *testing.T) {
	tokens, err := NewTokens(testSecret)
	require.NoError(t, err)

	token, _, err := tokens.Generate(time.Now().Add(-48*time.Hour), 24*time.Hour)
	require.NoError(t, err)

	assert.ErrorIs(t, tokens.Verify(token), ErrExpiredToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	tokens, err := NewTokens(testSecret)
	require.NoError(t, err)
	other, err := NewTokens([]byte("another-token-secret-of-32-bytes"))
	require.NoError(t, err)

	token, _, err := tokens.Generate(time.Now(), time.Hour)
	require.NoError(t, err)

	assert.ErrorIs(t, other.Verify(token), ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	tokens, err := NewTokens(testSecret)
	require.NoError(t, err)

	assert.ErrorIs(t, tokens.Verify("not-a-token"), ErrInvalidToken)
}
