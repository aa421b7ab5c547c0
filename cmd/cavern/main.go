package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/abiggs624/cavern/internal/config"
	"github.com/abiggs624/cavern/internal/logger"
	"github.com/abiggs624/cavern/internal/services"
	"github.com/abiggs624/cavern/internal/session"
)

func main() {
	// A .env file is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log, closer, err := logger.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	narrator := services.NewGeminiService(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.RequestTimeout, log)
	sess := session.New(narrator, session.DefaultInventory, cfg.ContentRating, log)

	log.Info("starting game", "session_id", sess.ID().String(), "model", cfg.Model)

	p := tea.NewProgram(NewGameUI(sess, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
