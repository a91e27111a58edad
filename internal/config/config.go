// Package config provides environment-driven configuration for routeviz.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultRouteEndpoint is the hosted shortest-path service.
const DefaultRouteEndpoint = "https://csc-320-backend.vercel.app/calculate-route"

// Config holds all application configuration values.
type Config struct {
	Port           string
	ListenHost     string
	CORSOrigins    []string
	LogLevel       string
	LogFormat      string
	RouteEndpoint  string
	RouteTimeout   time.Duration
	AnimationSpeed time.Duration
	GraceDelay     time.Duration
	GraphFile      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          envOrDefault("PORT", "8080"),
		ListenHost:    envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		LogFormat:     envOrDefault("LOG_FORMAT", "text"),
		RouteEndpoint: envOrDefault("ROUTE_API_ENDPOINT", DefaultRouteEndpoint),
		GraphFile:     os.Getenv("GRAPH_FILE"),
	}

	timeout, err := time.ParseDuration(envOrDefault("ROUTE_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("ROUTE_TIMEOUT must be a duration such as 15s: %w", err)
	}
	cfg.RouteTimeout = timeout

	speed, err := strconv.Atoi(envOrDefault("ANIMATION_SPEED_MS", "1000"))
	if err != nil {
		return nil, fmt.Errorf("ANIMATION_SPEED_MS must be an integer: %w", err)
	}
	cfg.AnimationSpeed = time.Duration(speed) * time.Millisecond

	grace, err := strconv.Atoi(envOrDefault("GRACE_DELAY_MS", "500"))
	if err != nil {
		return nil, fmt.Errorf("GRACE_DELAY_MS must be an integer: %w", err)
	}
	cfg.GraceDelay = time.Duration(grace) * time.Millisecond

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:5173")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
