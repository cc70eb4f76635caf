package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// TurnRateLimit limits chat turns per session (not per IP). Requires the
// JWT middleware to have run first.
func TurnRateLimit(maxTurns int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionVal, exists := c.Get("session_id")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		sessionID, ok := sessionVal.(string)
		if !ok || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		key := "turn_rl:" + sessionID + ":" + strconv.FormatInt(int64(window.Seconds()), 10)

		if redisClient == nil {
			if !allowInMemory(key, maxTurns, window) {
				RLBlocked.WithLabelValues("turn:" + c.FullPath()).Inc()
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "turn rate limit exceeded"})
				return
			}
			c.Next()
			return
		}

		ctx := context.Background()
		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			c.Header("X-TurnRateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		c.Header("X-TurnRateLimit-Limit", strconv.Itoa(maxTurns))
		c.Header("X-TurnRateLimit-Remaining", strconv.FormatInt(max(0, int64(maxTurns)-val), 10))

		if val > int64(maxTurns) {
			RLBlocked.WithLabelValues("turn:" + c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "turn rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues("turn:" + c.FullPath()).Inc()
		c.Next()
	}
}
