package config

import (
	"errors"
	"os"
	"time"
)

// Config holds application configuration
type Config struct {
	Port            string
	LogLevel        string
	WitToken        string
	WitBaseURL      string
	PageAccessToken string
	VerifyToken     string
	GraphAPIBase    string
	SessionTTL      time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8445"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		WitToken:        getEnv("WIT_TOKEN", ""),
		WitBaseURL:      getEnv("WIT_BASE_URL", ""),
		PageAccessToken: getEnv("FB_PAGE_ACCESS_TOKEN", ""),
		VerifyToken:     getEnv("FB_VERIFY_TOKEN", ""),
		GraphAPIBase:    getEnv("GRAPH_API_BASE_URL", ""),
		SessionTTL:      getEnvAsDuration("SESSION_TTL", time.Hour),
	}
}

// Validate reports configuration the process cannot start without.
func (c *Config) Validate() error {
	if c.PageAccessToken == "" {
		return errors.New("missing FB_PAGE_ACCESS_TOKEN")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration or
// returns a default value. A parseable zero (e.g. "0") is respected.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
