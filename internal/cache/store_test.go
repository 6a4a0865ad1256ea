package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const codeTTL = 10 * time.Minute

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	server, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(server.Close)

	store, err := New("redis://"+server.Addr(), codeTTL)
	require.NoError(t, err, "Failed to connect store")
	t.Cleanup(func() { store.Close() })

	return store, server
}

func TestCaptcha_SingleUse(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCaptcha(ctx, "flag-1", "1234"))

	ok, err := store.CheckCaptcha(ctx, "flag-1", "1234")
	require.NoError(t, err)
	assert.True(t, ok, "Correct code should match")

	// The match consumed the key, so a replay reads as expired
	_, err = store.CheckCaptcha(ctx, "flag-1", "1234")
	assert.ErrorIs(t, err, ErrExpired, "Replayed code should be gone")
}

func TestCaptcha_WrongCodeKeepsKey(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCaptcha(ctx, "flag-1", "1234"))

	ok, err := store.CheckCaptcha(ctx, "flag-1", "9999")
	require.NoError(t, err, "A mismatch is not an error")
	assert.False(t, ok)

	// The key survived the failed attempt, so a retry can still succeed
	ok, err = store.CheckCaptcha(ctx, "flag-1", "1234")
	require.NoError(t, err)
	assert.True(t, ok, "Retry with the right code should still match")
}

func TestCaptcha_Expiry(t *testing.T) {
	store, server := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCaptcha(ctx, "flag-1", "1234"))

	server.FastForward(codeTTL + time.Second)

	_, err := store.CheckCaptcha(ctx, "flag-1", "1234")
	assert.ErrorIs(t, err, ErrExpired, "Code past its TTL should read as expired")
}

func TestCaptcha_NeverIssued(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.CheckCaptcha(context.Background(), "no-such-flag", "1234")
	assert.ErrorIs(t, err, ErrExpired, "A flag never issued reads the same as expired")
}

func TestEmailCode_PurposeNamespaces(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveEmailCode(ctx, EmailRegister, "a@example.com", "1111"))
	require.NoError(t, store.SaveEmailCode(ctx, EmailForget, "a@example.com", "2222"))

	// A register code must not satisfy a forget check for the same address
	ok, err := store.CheckEmailCode(ctx, EmailForget, "a@example.com", "1111")
	require.NoError(t, err)
	assert.False(t, ok, "Codes must not cross purpose namespaces")

	ok, err = store.CheckEmailCode(ctx, EmailRegister, "a@example.com", "1111")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.CheckEmailCode(ctx, EmailForget, "a@example.com", "2222")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLikedSet(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	liked, err := store.HasLikedPost(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, liked, "Fresh user has liked nothing")

	require.NoError(t, store.AddLikedPost(ctx, 1, 10))

	liked, err = store.HasLikedPost(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, liked)

	// Membership is per user
	liked, err = store.HasLikedPost(ctx, 2, 10)
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, store.RemoveLikedPost(ctx, 1, 10))

	liked, err = store.HasLikedPost(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, liked, "Removal should clear membership")
}

func TestStore_Unavailable(t *testing.T) {
	store, server := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCaptcha(ctx, "flag-1", "1234"))

	server.Close()

	_, err := store.CheckCaptcha(ctx, "flag-1", "1234")
	assert.ErrorIs(t, err, ErrUnavailable, "A dead backend is unavailable, not expired")

	err = store.SaveCaptcha(ctx, "flag-2", "5678")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = store.HasLikedPost(ctx, 1, 10)
	assert.ErrorIs(t, err, ErrUnavailable)
}
