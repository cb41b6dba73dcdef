package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"pulseboard/internal/models"
	"pulseboard/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy defines the behavior when the rate limit store (Redis) is unavailable.
type FailPolicy int

const (
	// FailOpen allows the request to proceed if Redis is unavailable.
	FailOpen FailPolicy = iota
	// FailClosed blocks the request (503 Service Unavailable) if Redis is unavailable.
	FailClosed
)

// ErrNoRedis is returned by CheckRateLimit when no Redis client is configured.
var ErrNoRedis = errors.New("redis client is nil")

// CheckRateLimit checks if a resource has exceeded its rate limit.
// Returns true if allowed, false if limit exceeded.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	cnt, err := incrWindow(ctx, rdb, resource, id, window)
	if err != nil {
		return false, err
	}
	return cnt <= int64(limit), nil
}

// incrWindow counts one request for id against resource in the current window.
func incrWindow(ctx context.Context, rdb *redis.Client, resource, id string, window time.Duration) (int64, error) {
	if rdb == nil {
		return 0, ErrNoRedis
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	// INCR and set EXPIRE if new
	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if cnt == 1 {
		rdb.Expire(ctx, key, window)
	}
	return cnt, nil
}

// HeaderPrefix is the response header prefix a limiter for resource uses,
// e.g. "X-Export-RateLimit" for "export". It must not collide with the
// global limiter's X-RateLimit-* headers.
func HeaderPrefix(resource string) string {
	parts := strings.FieldsFunc(resource, func(r rune) bool {
		return r == '/' || r == '-' || r == '_' || r == '.'
	})
	if len(parts) == 0 {
		parts = []string{"route"}
	}
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
	}
	return "X-" + strings.Join(parts, "-") + "-RateLimit"
}

// RateLimit returns a Fiber middleware enforcing `limit` requests per `window`
// keyed by remote IP. It defaults to FailOpen policy.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name ...string) fiber.Handler {
	return RateLimitWithPolicy(rdb, limit, window, FailOpen, name...)
}

// RateLimitWithPolicy returns a Fiber middleware enforcing `limit` requests per `window` with a specific failure policy.
func RateLimitWithPolicy(rdb *redis.Client, limit int, window time.Duration, policy FailPolicy, name ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		id := "ip:" + c.IP()

		// Use the provided name or the request path as the resource identifier
		resource := c.Path()
		if len(name) > 0 {
			resource = name[0]
		}

		cnt, err := incrWindow(ctx, rdb, resource, id, window)
		if err != nil {
			if policy == FailClosed {
				observability.Logger.WarnContext(ctx, "rate limit unavailable, failing closed",
					slog.String("path", c.Path()),
					slog.String("resource", resource),
					slog.String("error", err.Error()),
				)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "rate limit unavailable",
				})
			}
			return c.Next()
		}

		prefix := HeaderPrefix(resource)
		c.Set(prefix+"-Limit", strconv.Itoa(limit))
		c.Set(prefix+"-Remaining", strconv.FormatInt(max(int64(limit)-cnt, 0), 10))
		if cnt > int64(limit) {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewRateLimitError("rate limit exceeded"))
		}
		return c.Next()
	}
}
