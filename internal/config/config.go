package config

import (
	"os"
	"strconv"
	"time"

	"wordmint/internal/domain"
	"wordmint/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	Version string

	// Model completion
	GeminiAPIKey string
	GeminiModel  string
	Temperature  float64
	MaxTokens    int

	// Minting service
	SyndicateAPIKey string
	ProjectID       string
	ConfirmPoll     time.Duration
	ConfirmTimeout  time.Duration

	// Game
	MaxQuestions int
	SessionTTL   time.Duration

	// Rate limiting
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from the environment (.env supported). Missing
// secrets are fatal; everything else has a default.
func Load() *Config {
	_ = godotenv.Load()

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		logger.Fatal("GEMINI_API_KEY is not set")
	}

	syndicateKey := os.Getenv("SYNDICATE_API_KEY")
	if syndicateKey == "" {
		logger.Fatal("SYNDICATE_API_KEY is not set")
	}

	projectID := os.Getenv("PROJECT_ID")
	if projectID == "" {
		logger.Fatal("PROJECT_ID is not set")
	}

	if os.Getenv("JWT_SECRET") == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	// Terse yes/no answers: low temperature, short output cap
	temperature := 0.5
	if v := os.Getenv("MODEL_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			temperature = f
		}
	}

	maxTokens := 25
	if v := os.Getenv("MODEL_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxTokens = n
		}
	}

	maxQuestions := domain.DefaultMaxQuestions
	if v := os.Getenv("MAX_QUESTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxQuestions = n
		}
	}

	confirmPoll := 5 * time.Second
	if v := os.Getenv("CONFIRM_POLL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			confirmPoll = time.Duration(n) * time.Second
		}
	}

	confirmTimeout := 2 * time.Minute
	if v := os.Getenv("CONFIRM_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			confirmTimeout = time.Duration(n) * time.Second
		}
	}

	sessionTTL := time.Hour
	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sessionTTL = time.Duration(n) * time.Minute
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			redisDB = n
		}
	}

	return &Config{
		AppPort:         port,
		Version:         os.Getenv("APP_VERSION"),
		GeminiAPIKey:    geminiKey,
		GeminiModel:     model,
		Temperature:     temperature,
		MaxTokens:       maxTokens,
		SyndicateAPIKey: syndicateKey,
		ProjectID:       projectID,
		ConfirmPoll:     confirmPoll,
		ConfirmTimeout:  confirmTimeout,
		MaxQuestions:    maxQuestions,
		SessionTTL:      sessionTTL,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
	}
}
