package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naijapath/routeviz/internal/animation"
)

const maxGraceDelay = 5 * time.Second

func (c *Config) validate() error {
	if err := c.validateNetwork(); err != nil {
		return err
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateRouteService(); err != nil {
		return err
	}

	if err := c.validateAnimation(); err != nil {
		return err
	}

	return c.validateGraphFile()
}

func (c *Config) validateNetwork() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid integer: %w", err)
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	// Loopback for local use; 0.0.0.0/:: for containers where the network
	// boundary is enforced externally.
	validHosts := map[string]bool{
		"127.0.0.1": true,
		"::1":       true,
		"localhost": true,
		"0.0.0.0":   true,
		"::":        true,
	}
	if !validHosts[c.ListenHost] {
		return fmt.Errorf("LISTEN_HOST must be a loopback address or 0.0.0.0/:: for containers (got %q)", c.ListenHost)
	}

	return nil
}

func (c *Config) validateCORS() error {
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain wildcard '*'")
		}
		if strings.ContainsAny(origin, "*?[]") {
			return fmt.Errorf("CORS_ORIGINS must not contain glob characters (*?[]), got %q", origin)
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS contains invalid origin %q (must have scheme and host)", origin)
		}
	}

	return nil
}

func (c *Config) validateLogging() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be 'text' or 'json', got %q", c.LogFormat)
	}

	return nil
}

func (c *Config) validateRouteService() error {
	u, err := url.ParseRequestURI(c.RouteEndpoint)
	if err != nil {
		return fmt.Errorf("ROUTE_API_ENDPOINT is not a valid URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("ROUTE_API_ENDPOINT scheme must be http:// or https://")
	}

	if u.Hostname() == "" {
		return fmt.Errorf("ROUTE_API_ENDPOINT must include a host")
	}

	if c.RouteTimeout <= 0 {
		return fmt.Errorf("ROUTE_TIMEOUT must be positive")
	}

	return nil
}

func (c *Config) validateAnimation() error {
	if err := animation.ValidateSpeed(c.AnimationSpeed); err != nil {
		return fmt.Errorf("ANIMATION_SPEED_MS: %w", err)
	}

	if c.GraceDelay < 0 || c.GraceDelay > maxGraceDelay {
		return fmt.Errorf("GRACE_DELAY_MS must be between 0 and %d", maxGraceDelay.Milliseconds())
	}

	return nil
}

func (c *Config) validateGraphFile() error {
	if c.GraphFile == "" {
		return nil
	}

	switch strings.ToLower(filepath.Ext(c.GraphFile)) {
	case ".yaml", ".yml", ".toml":
		return nil
	default:
		return fmt.Errorf("GRAPH_FILE must be a .yaml, .yml or .toml file, got %q", c.GraphFile)
	}
}
