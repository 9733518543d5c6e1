// Package config loads the environment-driven settings shared by the
// binaries.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds the runtime settings.
type Config struct {
	// BaseURL is the root of the storefront REST API.
	BaseURL string
	// SessionFile is where the persisted session lives.
	SessionFile string
	// NotifyInterval is the background notifier pass interval.
	NotifyInterval time.Duration
}

// Load reads configuration from environment variables, falling back to
// defaults for anything unset.
func Load() Config {
	cfg := Config{
		BaseURL:        getEnv("SALESAPP_API_URL", "http://localhost:8080"),
		SessionFile:    getEnv("SALESAPP_SESSION_FILE", defaultSessionFile()),
		NotifyInterval: 15 * time.Minute,
	}
	if v := os.Getenv("SALESAPP_NOTIFY_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Warn().
				Str("component", "config").
				Str("value", v).
				Msg("ignoring invalid SALESAPP_NOTIFY_INTERVAL")
		} else {
			cfg.NotifyInterval = d
		}
	}
	return cfg
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".salesapp", "session.json")
	}
	return filepath.Join(home, ".salesapp", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
