package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test constants
const (
	testPassword      = "SecurePassword123!"
	testWrongPassword = "WrongPassword456!"
)

func TestHashPassword_Success(t *testing.T) {
	hash, err := HashPassword(testPassword)

	require.NoError(t, err, "HashPassword should not return error for valid password")
	assert.NotEmpty(t, hash, "Hash should not be empty")
	assert.NotEqual(t, testPassword, hash, "Hash should be different from password")
	assert.Contains(t, hash, "$argon2id$", "Hash should contain Argon2id identifier")
}

func TestVerifyPassword_Correct(t *testing.T) {
	hash, err := HashPassword(testPassword)
	require.NoError(t, err, "Setup: HashPassword should not fail")

	match, err := VerifyPassword(testPassword, hash)

	require.NoError(t, err, "VerifyPassword should not return error")
	assert.True(t, match, "Password should match its hash")
}

func TestVerifyPassword_Incorrect(t *testing.T) {
	hash, err := HashPassword(testPassword)
	require.NoError(t, err, "Setup: HashPassword should not fail")

	match, err := VerifyPassword(testWrongPassword, hash)

	require.NoError(t, err, "VerifyPassword should not return error")
	assert.False(t, match, "Wrong password should not match hash")
}

func TestHashPassword_UniqueHashes(t *testing.T) {
	hash1, err1 := HashPassword(testPassword)
	hash2, err2 := HashPassword(testPassword)

	require.NoError(t, err1, "First HashPassword should not fail")
	require.NoError(t, err2, "Second HashPassword should not fail")
	assert.NotEqual(t, hash1, hash2, "Same password should produce different hashes due to unique salt")
}

func TestHashPassword_VeryLongPassword(t *testing.T) {
	password := strings.Repeat("a", 1000)

	hash, err := HashPassword(password)

	require.NoError(t, err, "HashPassword should handle very long passwords")
	assert.NotEmpty(t, hash)

	match, err := VerifyPassword(password, hash)
	require.NoError(t, err)
	assert.True(t, match, "Very long password should match its hash")
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	invalidHashes := []string{
		"",
		"plain-text-not-hash",
		"$invalid$format$",
		"$argon2id$v=19$m=65536",
		"$argon2id$v=19$m=65536$corrupted",
	}

	for _, invalidHash := range invalidHashes {
		t.Run(invalidHash, func(t *testing.T) {
			match, err := VerifyPassword(testPassword, invalidHash)

			assert.Error(t, err, "VerifyPassword should return error for invalid hash format")
			assert.False(t, match, "Match should be false for invalid hash")
		})
	}
}

// Table-driven test for comprehensive coverage
func TestVerifyPassword_TableDriven(t *testing.T) {
	testCases := []struct {
		name        string
		password    string
		testPass    string
		expectMatch bool
		description string
	}{
		{
			name:        "correct_password",
			password:    testPassword,
			testPass:    testPassword,
			expectMatch: true,
			description: "Same password should match",
		},
		{
			name:        "incorrect_password",
			password:    testPassword,
			testPass:    testWrongPassword,
			expectMatch: false,
			description: "Different password should not match",
		},
		{
			name:        "case_sensitive",
			password:    "Password123",
			testPass:    "password123",
			expectMatch: false,
			description: "Password verification should be case-sensitive",
		},
		{
			name:        "whitespace_matters",
			password:    "Password123 ",
			testPass:    "Password123",
			expectMatch: false,
			description: "Trailing whitespace should matter",
		},
		{
			name:        "unicode_password",
			password:    "Şifre123!",
			testPass:    "Şifre123!",
			expectMatch: true,
			description: "Unicode characters should work correctly",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hash, err := HashPassword(tc.password)
			require.NoError(t, err, "Setup: HashPassword should not fail")

			match, err := VerifyPassword(tc.testPass, hash)

			require.NoError(t, err, "VerifyPassword should not return error")
			assert.Equal(t, tc.expectMatch, match, tc.description)
		})
	}
}
