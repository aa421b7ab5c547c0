package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/abiggs624/cavern/internal/config"
)

// Setup configures the global slog logger. The TUI owns stdout, so
// diagnostics go to the configured log file; an empty path discards
// them. The returned closer is nil when nothing was opened.
func Setup(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	var w io.Writer = io.Discard
	var closer io.Closer

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closer = f
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.Environment == "production" {
		// JSON format for production
		handler = slog.NewJSONHandler(w, opts)
	} else {
		// Text format for development
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, closer, nil
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
