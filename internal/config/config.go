// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	APIToken    string `env:"API_TOKEN"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.APIToken == "" {
		return Config{}, fmt.Errorf("API_TOKEN is required")
	}
	return cfg, nil
}

// SlogLevel maps the configured level name, defaulting to info on unknown
// values.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
