package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordmint/internal/config"
	"wordmint/internal/domain"
	httpServer "wordmint/internal/http"
	"wordmint/internal/http/middleware"
	"wordmint/internal/llm"
	"wordmint/internal/logger"
	"wordmint/internal/mint"
	"wordmint/internal/service"
	"wordmint/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// geminiCompleter adapts the concrete LLM client to the orchestrator's
// completion interface
type geminiCompleter struct {
	client *llm.Client
}

func (g geminiCompleter) Stream(ctx context.Context, turns []domain.ConversationTurn) (service.TokenStream, error) {
	s, err := g.client.Stream(ctx, turns)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_JSON") == "true")

	cfg := config.Load()
	service.InitJWT()

	ctx := context.Background()
	llmClient, err := llm.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, float32(cfg.Temperature), int32(cfg.MaxTokens))
	if err != nil {
		logger.Fatal("failed to create completion client", "err", err)
	}
	defer llmClient.Close()

	mintClient := mint.NewClient(cfg.SyndicateAPIKey, cfg.ProjectID).
		WithConfirmBounds(cfg.ConfirmPoll, cfg.ConfirmTimeout)

	sessions := session.NewStore(cfg.MaxQuestions, cfg.SessionTTL)
	orch := service.NewOrchestrator(
		sessions,
		geminiCompleter{client: llmClient},
		llmClient,
		mintClient,
		mintClient,
		cfg.ConfirmTimeout+30*time.Second,
	)

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer.RegisterRoutes(r, sessions, orch, cfg.Version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		log.Println("server started on port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown:", err)
	}

	log.Println("server exited")
}
