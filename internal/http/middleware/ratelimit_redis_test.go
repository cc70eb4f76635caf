package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func doGet(t *testing.T, url string) int {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	return res.StatusCode
}

// Without Redis the limiter falls back to the in-process fixed window.
func TestRateLimitFallbackInMemory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	redisClient = nil

	window := 200 * time.Millisecond
	max := 2

	r := gin.New()
	r.GET("/test", RedisRateLimit(max, window), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	// let any state from earlier tests age out of the window
	time.Sleep(window + 50*time.Millisecond)

	for i := 0; i < max; i++ {
		if code := doGet(t, srv.URL+"/test"); code != 200 {
			t.Fatalf("request %d: status %d", i+1, code)
		}
	}

	if code := doGet(t, srv.URL+"/test"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after %d requests, got %d", max, code)
	}

	// a new window admits requests again
	time.Sleep(window + 50*time.Millisecond)
	if code := doGet(t, srv.URL+"/test"); code != 200 {
		t.Fatalf("expected 200 in fresh window, got %d", code)
	}
}

// Integration-style test: runs only if REDIS_ADDR env is set.
func TestRedisRateLimitIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	pass := os.Getenv("REDIS_PASSWORD")
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}

	InitRedisRateLimiter(addr, pass, db)
	if redisClient == nil {
		t.Skip("redis unavailable")
	}

	gin.SetMode(gin.TestMode)
	w := 2 * time.Second
	max := 2

	r := gin.New()
	r.GET("/test", RedisRateLimit(max, w), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	for i := 0; i < max; i++ {
		if code := doGet(t, srv.URL+"/test"); code != 200 {
			t.Fatalf("expected 200 got %d", code)
		}
	}

	if code := doGet(t, srv.URL+"/test"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", code)
	}
}
