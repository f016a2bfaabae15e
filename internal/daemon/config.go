package daemon

import (
	"errors"
	"fmt"
	"os"
	"time"
)

type Config struct {
	Port     string
	Interval time.Duration
}

func LoadConfigFromEnv() (Config, error) {
	interval, err := time.ParseDuration(getEnv("WATCHD_INTERVAL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid WATCHD_INTERVAL: %w", err)
	}

	if interval < time.Minute {
		return Config{}, errors.New("WATCHD_INTERVAL must be >= 1m")
	}

	return Config{
		Port:     getEnv("WATCHD_PORT", "8080"),
		Interval: interval,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
