package http

import (
	"os"
	"strconv"
	"time"

	"wordmint/internal/http/handlers"
	"wordmint/internal/http/middleware"
	"wordmint/internal/service"
	"wordmint/internal/session"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the game endpoints onto the engine
func RegisterRoutes(r *gin.Engine, sessions *session.Store, orch *service.Orchestrator, version string) {
	h := handlers.NewHandler(sessions, orch)
	healthHandler := handlers.NewHealthHandler(sessions, version)

	// read limits from env, with safe defaults
	apiRateLimit := 30
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	turnRateLimit := 20
	if v := os.Getenv("TURN_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			turnRateLimit = n
		}
	}
	turnRateWindow := time.Minute
	if v := os.Getenv("TURN_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			turnRateWindow = time.Duration(n) * time.Second
		}
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))

	// Session tokens: one per game; replay after a win means a new session
	v1.POST("/session", h.CreateSession)

	// The single game surface: one conversational turn per request
	v1.POST("/chat", middleware.JWT(), middleware.TurnRateLimit(turnRateLimit, turnRateWindow), h.Chat)
}
