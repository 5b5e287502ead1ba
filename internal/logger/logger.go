package logger

import (
	"log/slog"
	"os"

	"fablestream/internal/config"
)

// Setup configures the global slog logger based on environment.
func Setup(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

// WithGameID adds the game session ID to logger context.
func WithGameID(log *slog.Logger, gameID string) *slog.Logger {
	return log.With("game_id", gameID)
}
