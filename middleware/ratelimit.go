package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fgiusti90/psico-app/config"
	"github.com/fgiusti90/psico-app/util"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRateLimit  = 60
	defaultRateWindow = time.Minute
)

var mutatingMethods = []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// RateLimiter limits mutating requests per practitioner (or client IP when
// unauthenticated) with a fixed window counter in Redis. Reads are never
// limited, and requests pass when Redis is unavailable.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit == 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window == 0 {
		cfg.Window = defaultRateWindow
	}

	return func(c *gin.Context) {
		if !util.Contains(c.Request.Method, mutatingMethods) {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		subject := clientIP
		userID, ok := GetUserID(c)
		if ok {
			subject = userID
		}
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		key := rateLimitKey(endpoint, subject)

		allowed, err := checkRateLimit(c.Request.Context(), key, cfg.Limit, cfg.Window)
		if err != nil {
			util.LogAuditEvent(util.AuditEvent{
				EventType: util.EventRateLimitFailure,
				UserID:    userID,
				IP:        clientIP,
				Message:   fmt.Sprintf("Rate limit check failed: %v", err),
			})
			c.Next()
			return
		}

		if !allowed {
			util.LogRateLimitExceeded(userID, clientIP, endpoint)
			util.CallTooManyRequests(c, util.APIErrorParams{
				Msg: "Too many requests. Please try again later.",
				Err: fmt.Errorf("rate limit exceeded"),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func rateLimitKey(endpoint, subject string) string {
	return fmt.Sprintf("ratelimit:%s:%s", endpoint, subject)
}

// checkRateLimit reports whether the request fits in the current window.
func checkRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return true, nil
	}

	pipe := rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return incrCmd.Val() <= int64(limit), nil
}

// ResetRateLimit clears the counter of one subject on one endpoint.
func ResetRateLimit(ctx context.Context, subject, endpoint string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return fmt.Errorf("redis not available")
	}
	return rdb.Del(ctx, rateLimitKey(endpoint, subject)).Err()
}
