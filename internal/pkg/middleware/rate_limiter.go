package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/payrecon/internal/pkg/constants"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/utils"
)

// RateLimiterConfig contains configuration for the rate limiter
type RateLimiterConfig struct {
	RedisClient *redis.Client
	Key         string        // key prefix
	Limit       int           // requests allowed per period
	Period      time.Duration // fixed window length
}

// RateLimiterMiddleware is a fixed window limiter keyed by route and caller.
// The caller is the authenticated user when present, else the client IP.
// Redis errors let the request through.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identifier := c.RealIP()
			if userID := c.Get(ContextUserID); userID != nil {
				identifier = fmt.Sprintf("%v", userID)
			}
			key := fmt.Sprintf("%s:%s:%s", config.Key, c.Path(), identifier)
			ctx := c.Request().Context()

			n, err := config.RedisClient.Incr(ctx, key).Result()
			if err != nil {
				logger.WarnCtx(ctx, "Rate limiter unavailable, allowing request",
					logger.String("key", key), logger.Err(err))
				return next(c)
			}
			if n == 1 {
				// first hit opens the window
				config.RedisClient.Expire(ctx, key, config.Period)
			}

			count := int(n)
			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))

			if count > config.Limit {
				ttl, err := config.RedisClient.TTL(ctx, key).Result()
				if err != nil || ttl < 0 {
					ttl = config.Period
				}
				header.Set("X-RateLimit-Remaining", "0")
				header.Set("Retry-After", strconv.FormatInt(int64(ttl.Seconds()), 10))
				return utils.TooManyRequestsResponse(c, "Rate limit exceeded")
			}

			header.Set("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
			return next(c)
		}
	}
}

// UserRateLimiter limits each authenticated user on the route it guards
func UserRateLimiter(limit int, period time.Duration, redisClient *redis.Client) echo.MiddlewareFunc {
	return RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: redisClient,
		Key:         constants.KeyUserRateLimit,
		Limit:       limit,
		Period:      period,
	})
}
