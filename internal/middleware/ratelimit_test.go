package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCheckRateLimit_NilRedis(t *testing.T) {
	allowed, err := CheckRateLimit(context.Background(), nil, "export", "ip:1", 1, time.Minute)
	assert.ErrorIs(t, err, ErrNoRedis)
	assert.False(t, allowed)
}

func TestCheckRateLimit_CountsPerWindow(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := CheckRateLimit(ctx, rdb, "export", "ip:1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i+1)
	}
	allowed, err := CheckRateLimit(ctx, rdb, "export", "ip:1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// another client has its own budget
	allowed, err = CheckRateLimit(ctx, rdb, "export", "ip:2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	assert.Equal(t, time.Minute, mr.TTL("rl:export:ip:1"))
	mr.FastForward(time.Minute + time.Second)

	allowed, err = CheckRateLimit(ctx, rdb, "export", "ip:1", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func rateLimitedApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/export", handler, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRateLimit_Middleware(t *testing.T) {
	_, rdb := newTestRedis(t)
	app := rateLimitedApp(RateLimit(rdb, 2, time.Minute, "export"))

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/export", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "2", resp.Header.Get("X-Export-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(1-i), resp.Header.Get("X-Export-RateLimit-Remaining"))
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/export", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
	assert.Equal(t, "0", resp.Header.Get("X-Export-RateLimit-Remaining"))
}

func TestRateLimit_EnforcedInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	_, rdb := newTestRedis(t)
	app := rateLimitedApp(RateLimit(rdb, 1, time.Minute, "export"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/export", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/export", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestHeaderPrefix(t *testing.T) {
	tests := map[string]string{
		"export":          "X-Export-RateLimit",
		"/api/export.csv": "X-Api-Export-Csv-RateLimit",
		"bulk_download":   "X-Bulk-Download-RateLimit",
		"":                "X-Route-RateLimit",
		"-":               "X-Route-RateLimit",
	}
	for in, want := range tests {
		assert.Equal(t, want, HeaderPrefix(in), "HeaderPrefix(%q)", in)
	}
}

func TestRateLimit_FailPolicies(t *testing.T) {

	open := rateLimitedApp(RateLimit(nil, 1, time.Minute, "export"))
	resp, err := open.Test(httptest.NewRequest(http.MethodGet, "/export", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	closed := rateLimitedApp(RateLimitWithPolicy(nil, 1, time.Minute, FailClosed, "export"))
	resp, err = closed.Test(httptest.NewRequest(http.MethodGet, "/export", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRateLimit_RedisDownFailsOpen(t *testing.T) {
	mr, rdb := newTestRedis(t)
	mr.Close()

	app := rateLimitedApp(RateLimit(rdb, 1, time.Minute))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/export", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
