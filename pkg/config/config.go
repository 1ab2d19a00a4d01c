// Package config centralises runtime configuration for pixtrack.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/stefanpenner/pixtrack/pkg/pixela"
	"github.com/stefanpenner/pixtrack/pkg/store"
)

// Config captures runtime configuration values.
type Config struct {
	DataDir        string
	APIBaseURL     string
	RequestTimeout time.Duration
	StatusLifetime time.Duration
	MetricsAddress string // empty disables the /metrics listener
	Debug          bool
}

// Load reads an optional .env file and then the environment, applying defaults.
func Load() Config {
	// A missing .env is the common case.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the environment only.
func FromEnv() Config {
	return Config{
		DataDir:        getEnv("PIXTRACK_DIR", store.DefaultDataDir()),
		APIBaseURL:     getEnv("PIXTRACK_API_BASE", pixela.DefaultBaseURL),
		RequestTimeout: getDurationEnv("PIXTRACK_TIMEOUT", 10*time.Second),
		StatusLifetime: getDurationEnv("PIXTRACK_STATUS_TTL", 3*time.Second),
		MetricsAddress: getEnv("PIXTRACK_METRICS_ADDR", ""),
		Debug:          getBoolEnv("PIXTRACK_DEBUG", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
