package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// DefaultDatasetURL is the canonical OWID world-wide CSV.
const DefaultDatasetURL = "https://covid.ourworldindata.org/data/owid-covid-data.csv"

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatasetURL   string
	FetchTimeout time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// HoverDelay is how long a hover must rest on one country before the
	// highlight is broadcast.
	HoverDelay time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	hoverDelay, err := parseDuration("HOVER_DELAY", "300ms")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatasetURL:      envOrDefault("DATASET_URL", DefaultDatasetURL),
		FetchTimeout:    fetchTimeout,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		HoverDelay:      hoverDelay,
	}

	u, err := url.Parse(cfg.DatasetURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("DATASET_URL must be an http(s) URL, got %q", cfg.DatasetURL)
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}
