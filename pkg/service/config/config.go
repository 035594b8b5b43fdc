// Package config loads process-wide configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process-wide settings. The API key is read-only after
// startup; its absence is fatal for tool invocations, not for launch.
type Config struct {
	// APIKey is the bearer credential for the video API (OPENAI_API_KEY).
	APIKey string

	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string

	// HTTPTimeout bounds each outbound API call.
	HTTPTimeout time.Duration

	// Logging settings
	LogLevel string

	// Service identification
	ServiceName    string
	ServiceVersion string
}

// DefaultConfig returns the baseline settings before env overrides.
func DefaultConfig() *Config {
	return &Config{
		APIKey:         "",
		BaseURL:        "",
		HTTPTimeout:    60 * time.Second,
		LogLevel:       "info",
		ServiceName:    "sora-video-mcp",
		ServiceVersion: "dev",
	}
}

// Load reads configuration from defaults, an optional .env file and the
// environment.
func Load(envFile string) (*Config, error) {
	cfg := DefaultConfig()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		godotenv.Load(".env")
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("SORA_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SORA_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if v := os.Getenv("SORA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SORA_SERVICE_NAME"); v != "" {
		cfg.ServiceName = v
	}
	if v := os.Getenv("SORA_SERVICE_VERSION"); v != "" {
		cfg.ServiceVersion = v
	}
}

// Validate checks the essential fields. The API key is deliberately not
// required here: the server may launch without one and fail per-call.
func (c *Config) Validate() error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
	return nil
}
