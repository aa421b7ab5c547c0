package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")
	t.Setenv("CONTENT_RATING", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	if cfg.Model != "gemini-2.0-flash" {
		t.Errorf("expected default model, got %q", cfg.Model)
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Errorf("expected 60s timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.ContentRating != "R" {
		t.Errorf("expected rating R, got %q", cfg.ContentRating)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "15")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.APIKey != "test-key" {
		t.Errorf("expected API key from env, got %q", cfg.APIKey)
	}
	if cfg.Model != "gemini-2.5-pro" {
		t.Errorf("expected model from env, got %q", cfg.Model)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("expected 15s timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for missing API key")
	}

	cfg.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.expected {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
