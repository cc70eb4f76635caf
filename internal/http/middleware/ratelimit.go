package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

var rlMu sync.Mutex
var clients = make(map[string]*clientInfo)

// allowInMemory is the fixed-window check used when Redis is not configured
func allowInMemory(key string, maxRequests int, window time.Duration) bool {
	rlMu.Lock()
	defer rlMu.Unlock()

	ci, ok := clients[key]
	now := time.Now()
	if !ok || now.Sub(ci.last) > window {
		clients[key] = &clientInfo{last: now, count: 1}
		return true
	}

	ci.count++
	return ci.count <= maxRequests
}

// SimpleRateLimit blocks clients that send more than maxRequests per window.
// Purely in-process; used standalone and as the fallback for the Redis
// limiter.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allowInMemory("ip:"+c.ClientIP(), maxRequests, window) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
