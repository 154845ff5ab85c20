package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SubmitRateLimit caps issue submissions per reporter per day, counting in
// redis with a TTL set on the first increment. A nil client disables the
// limiter (local development without redis).
func SubmitRateLimit(client *redis.Client, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || limit <= 0 {
			c.Next()
			return
		}

		userID := c.GetHeader("X-User-Id")
		if userID == "" {
			userID = c.ClientIP()
		}
		key := "submit_limit:" + userID

		ctx := c.Request.Context()
		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			// Degrade open rather than blocking reports on a redis outage.
			c.Next()
			return
		}
		if count == 1 {
			_ = client.Expire(ctx, key, 24*time.Hour).Err()
		}

		if count > int64(limit) {
			retryAfter, _ := client.TTL(ctx, key).Result()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":        "RATE_LIMITED",
					"message":     "Daily submission limit reached",
					"retry_after": retryAfter.Seconds(),
				},
			})
			return
		}

		c.Next()
	}
}
