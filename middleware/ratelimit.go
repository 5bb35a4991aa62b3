package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// FixedWindow counts requests per client IP in Redis and rejects them with
// 429 once limit is exceeded inside window. A nil client or a Redis error
// lets the request through.
func FixedWindow(rdb *redis.Client, routeKey string, limit int, window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		window = time.Minute
	}

	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		now := time.Now()
		bucket := now.UnixNano() / int64(window)
		key := fmt.Sprintf("rl:%s:ip:%s:%d", routeKey, c.ClientIP(), bucket)

		count, err := allow(c.Request.Context(), rdb, key, window)
		if err != nil {
			log.Warn().Err(err).Str("route", routeKey).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if count > int64(limit) {
			windowEnd := time.Unix(0, (bucket+1)*int64(window))
			retry := int(windowEnd.Sub(now).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			return
		}
		c.Next()
	}
}

func allow(ctx context.Context, rdb *redis.Client, key string, window time.Duration) (int64, error) {
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := rdb.PExpire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}
