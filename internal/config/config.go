package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// GameSettings are the game-level knobs loaded from an optional YAML
// settings file.
type GameSettings struct {
	Scenario     string `yaml:"scenario"`      // premise handed to the backend
	Rating       string `yaml:"rating"`        // content rating, e.g. "PG-13"
	HistoryLimit int    `yaml:"history_limit"` // conversation window size
}

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	RedisURL string

	LLMProvider     string
	ModelName       string
	AnthropicAPIKey string

	MediaBaseURL string
	MediaAPIKey  string

	Settings GameSettings
}

// Load reads configuration from the environment, plus game settings from
// the YAML file named by SETTINGS_PATH when set.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		LLMProvider:     getEnv("LLM_PROVIDER", "anthropic"),
		ModelName:       getEnv("MODEL_NAME", "claude-sonnet-4-20250514"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		MediaBaseURL:    getEnv("MEDIA_BASE_URL", "https://api.venice.ai/api/v1"),
		MediaAPIKey:     os.Getenv("MEDIA_API_KEY"),
		Settings: GameSettings{
			Rating:       "PG-13",
			HistoryLimit: 10,
		},
	}

	if path := os.Getenv("SETTINGS_PATH"); path != "" {
		settings, err := LoadSettings(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings file: %w", err)
		}
		cfg.Settings = settings
	}

	return cfg, nil
}

// LoadSettings parses a YAML game settings file.
func LoadSettings(path string) (GameSettings, error) {
	settings := GameSettings{
		Rating:       "PG-13",
		HistoryLimit: 10,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if settings.HistoryLimit <= 0 {
		settings.HistoryLimit = 10
	}
	return settings, nil
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
