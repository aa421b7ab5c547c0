package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// APIKey is the narration service credential, injected as
	// configuration rather than embedded in source.
	APIKey  string
	Model   string
	BaseURL string

	// RequestTimeout bounds each narration call. A stalled call
	// would otherwise leave the session waiting with no escape.
	RequestTimeout time.Duration

	// ContentRating gates the client-side profanity softener.
	ContentRating string

	Environment string
	LogLevel    slog.Level
	LogFile     string
}

func Load() *Config {
	return &Config{
		APIKey:         getEnv("GEMINI_API_KEY", ""),
		Model:          getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		BaseURL:        getEnv("GEMINI_BASE_URL", ""),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,
		ContentRating:  getEnv("CONTENT_RATING", "R"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:        getEnv("LOG_FILE", "cavern.log"),
	}
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
