package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRateLimiter creates a rate limiter with miniredis for testing
func setupTestRateLimiter(t *testing.T, maxRequests int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	server, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	rl := NewRateLimiter(client, RateLimiterConfig{
		MaxRequests: maxRequests,
		Window:      window,
	})
	return rl, server
}

func testRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestRateLimiter_AllowsRequestsUnderLimit(t *testing.T) {
	rl, _ := setupTestRateLimiter(t, 5, 1*time.Minute)
	router := testRouter(rl)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "Request %d should be allowed", i+1)
	}
}

func TestRateLimiter_BlocksRequestsOverLimit(t *testing.T) {
	rl, _ := setupTestRateLimiter(t, 5, 1*time.Minute)
	router := testRouter(rl)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code, "Sixth request should be blocked")
	assert.NotEmpty(t, w.Header().Get("Retry-After"), "Blocked response should carry Retry-After")

	// The rejection renders the same envelope as every other response
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, float64(http.StatusTooManyRequests), envelope["code"])
	assert.Equal(t, "/ping", envelope["request"])

	payload := envelope["payload"].(map[string]any)
	assert.Equal(t, "Too many requests. Please try again later.", payload["message"])
	assert.NotNil(t, payload["retry_after"])
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	rl, _ := setupTestRateLimiter(t, 3, 1*time.Minute)
	router := testRouter(rl)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	// First IP is exhausted, second IP still has a fresh budget
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Different IP should have its own limit")
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl, server := setupTestRateLimiter(t, 2, 1*time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, _, err := rl.CheckLimit(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, allowed)
	}

	allowed, retryAfter, err := rl.CheckLimit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))

	server.FastForward(61 * time.Second)

	allowed, _, err = rl.CheckLimit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed, "A new window starts after the old one expires")
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	rl, server := setupTestRateLimiter(t, 1, 1*time.Minute)
	router := testRouter(rl)

	server.Close()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "A dead redis must not lock callers out")
}
