package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/youhong316/harbor/devmode"
)

// Config holds the configuration for the fixture search service.
// Environment variables are parsed from the HARBOR_FIXTURE_ prefix.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Catalog file (.json/.yaml). Empty serves the built-in sample catalog.
	CatalogPath string `envconfig:"CATALOG_PATH" default:""`

	// Credentials that unlock private projects. Empty means the devmode pair.
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// New creates a new Config by parsing environment variables.
// Example: HARBOR_FIXTURE_HTTP_PORT=9000, HARBOR_FIXTURE_CATALOG_PATH=./catalog.yaml
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("HARBOR_FIXTURE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if cfg.Username == "" {
		cfg.Username, cfg.Password = devmode.Username, devmode.Password
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewForTesting returns a config that serves the sample catalog on an ephemeral port.
func NewForTesting() *Config {
	return &Config{
		HTTPPort: 0,
		Username: devmode.Username,
		Password: devmode.Password,
		LogLevel: "debug",
	}
}

// Validate checks ranges and the log level.
func (c *Config) Validate() error {
	if c.HTTPPort < 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.Username == "" {
		return fmt.Errorf("USERNAME cannot be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
