package config

import (
	"os"
	"strconv"
	"time"

	"kanban_board/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	Version     string

	LogLevel string
	LogJSON  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit  int
	APIRateWindow time.Duration

	// How long a processed moveId is remembered for replay detection.
	MoveDedupTTL time.Duration
}

// Load reads configuration from the environment (plus .env when present).
// Missing required values are fatal.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	cfg := &Config{
		AppPort:       port,
		DatabaseURL:   dbURL,
		Version:       os.Getenv("APP_VERSION"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogJSON:       os.Getenv("LOG_JSON") == "true",
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       intEnv("REDIS_DB", 0),
		APIRateLimit:  intEnv("API_RATE_LIMIT", 60),
		APIRateWindow: time.Duration(intEnv("API_RATE_WINDOW_SECONDS", 60)) * time.Second,
		MoveDedupTTL:  durationEnv("MOVE_DEDUP_TTL", 24*time.Hour),
	}
	return cfg
}

func intEnv(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Fatal("invalid "+name, "value", v)
	}
	return n
}

func durationEnv(name string, def time.Duration) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		logger.Fatal("invalid "+name, "value", v)
	}
	return d
}
