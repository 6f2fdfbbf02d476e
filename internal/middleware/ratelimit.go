package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
)

// RateLimiter is a fixed-window limiter shared by every instance through Redis.
// A nil client disables it; Redis errors let the request through.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	log    *slog.Logger
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, log *slog.Logger) *RateLimiter {
	if limit <= 0 {
		limit = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window, log: log}
}

// Limit guards a route group; scope separates counters between groups.
func (rl *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rdb == nil {
			c.Next()
			return
		}

		key := "rl:" + scope + ":" + clientKey(c)
		count, err := rl.incr(c.Request.Context(), key)
		if err != nil {
			rl.log.Warn("rate limiter unavailable", "scope", scope, "error", err)
			c.Next()
			return
		}

		if count > int64(rl.limit) {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Too many requests, slow down.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// clientKey prefers the authenticated customer over the client address.
func clientKey(c *gin.Context) string {
	if id := SessionFrom(c).CustomerID; id != "" {
		return "c:" + id
	}
	return "ip:" + c.ClientIP()
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}
