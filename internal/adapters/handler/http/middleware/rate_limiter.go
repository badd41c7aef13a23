package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rateLimitPrefix = "diary:ratelimit:"

// RateLimiter allows limit requests per client IP in fixed windows counted in
// redis. When redis misbehaves requests are let through.
func RateLimiter(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := rateLimitPrefix + c.ClientIP()

		var (
			count *redis.IntCmd
			ttl   *redis.DurationCmd
		)
		_, err := rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
			count = p.Incr(ctx, key)
			ttl = p.PTTL(ctx, key)
			return nil
		})
		if err != nil {
			logger.Warn("rate limiter skipped", zap.Error(err))
			c.Next()
			return
		}

		reset := ttl.Val()
		if reset < 0 {
			// first hit of the window, or a counter that lost its expiry
			if err := rdb.PExpire(ctx, key, window).Err(); err != nil {
				logger.Warn("rate limiter expire failed, dropping counter", zap.String("key", key), zap.Error(err))
				rdb.Del(ctx, key)
				c.Next()
				return
			}
			reset = window
		}

		used := count.Val()
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(limit)-used), 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(reset).Unix(), 10))

		if used > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(reset.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
