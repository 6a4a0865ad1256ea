package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test constants
const (
	testSecret        = "test-secret-key-for-token-testing"
	testWrongSecret   = "wrong-secret-key-for-token-testing"
	testTokenDuration = 1 * time.Hour
)

func TestGenerateToken_Success(t *testing.T) {
	token, err := GenerateToken(42, testSecret, testTokenDuration)

	require.NoError(t, err, "GenerateToken should not return error for valid input")
	assert.NotEmpty(t, token, "Token should not be empty")
	assert.Contains(t, token, ".", "JWT token should contain dots")
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken(42, testSecret, testTokenDuration)
	require.NoError(t, err, "Setup: GenerateToken should not fail")

	userID, err := VerifyToken(token, testSecret)

	require.NoError(t, err, "VerifyToken should accept a fresh token")
	assert.Equal(t, uint(42), userID, "Token should carry the user id it was issued for")
}

// Every verification failure collapses to the same ErrInvalidToken so a caller
// can not distinguish tampering from expiry.
func TestVerifyToken_UniformFailure(t *testing.T) {
	fresh, err := GenerateToken(42, testSecret, testTokenDuration)
	require.NoError(t, err)

	expired, err := GenerateToken(42, testSecret, -1*time.Hour)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "empty_token", token: "", secret: testSecret},
		{name: "garbage_token", token: "not-a-token", secret: testSecret},
		{name: "wrong_secret", token: fresh, secret: testWrongSecret},
		{name: "expired_token", token: expired, secret: testSecret},
		{name: "truncated_token", token: fresh[:len(fresh)-10], secret: testSecret},
		{name: "tampered_signature", token: fresh + "AA", secret: testSecret},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			userID, err := VerifyToken(tc.token, tc.secret)

			assert.ErrorIs(t, err, ErrInvalidToken, "Every failure must be ErrInvalidToken")
			assert.Zero(t, userID, "Failed verification should return zero user id")
		})
	}
}

func TestGenerateToken_ZeroDuration(t *testing.T) {
	token, err := GenerateToken(42, testSecret, 0)
	require.NoError(t, err, "GenerateToken should handle zero duration")
	assert.NotEmpty(t, token)

	// Token should be immediately expired
	_, err = VerifyToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken, "Token with zero duration should be expired")
}

func TestGenerateToken_DistinctUsers(t *testing.T) {
	token1, err := GenerateToken(1, testSecret, testTokenDuration)
	require.NoError(t, err)
	token2, err := GenerateToken(2, testSecret, testTokenDuration)
	require.NoError(t, err)

	assert.NotEqual(t, token1, token2, "Different users should get different tokens")

	id1, err := VerifyToken(token1, testSecret)
	require.NoError(t, err)
	id2, err := VerifyToken(token2, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(1), id1)
	assert.Equal(t, uint(2), id2)
}
