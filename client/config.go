package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds client settings read from HARBOR_SEARCH_* environment variables.
// Example: HARBOR_SEARCH_BASE_URL, HARBOR_SEARCH_TIMEOUT=10s
type Config struct {
	BaseURL          string        `envconfig:"BASE_URL" default:"http://localhost:8080"`
	Username         string        `envconfig:"USERNAME"`
	Password         string        `envconfig:"PASSWORD"`
	Timeout          time.Duration `envconfig:"TIMEOUT" default:"30s"`
	Debug            bool          `envconfig:"DEBUG" default:"false"`
	EscapeTerms      bool          `envconfig:"ESCAPE_TERMS" default:"false"`
	RetryMaxAttempts int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"1"`
	RequestID        bool          `envconfig:"REQUEST_ID" default:"false"`
}

// LoadConfig parses the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("HARBOR_SEARCH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// Options translates the configuration into construction options.
func (cfg *Config) Options() []Option {
	opts := []Option{WithHTTPTimeout(cfg.Timeout)}
	if cfg.Username != "" {
		opts = append(opts, WithBasicAuth(cfg.Username, cfg.Password))
	}
	if cfg.Debug {
		opts = append(opts, WithDebugLogging(true))
	}
	if cfg.EscapeTerms {
		opts = append(opts, WithEscapedTerms())
	}
	if cfg.RetryMaxAttempts > 1 {
		opts = append(opts, WithRetry(cfg.RetryMaxAttempts))
	}
	if cfg.RequestID {
		opts = append(opts, WithRequestID())
	}
	return opts
}

// NewFromConfig builds a Client from cfg; extra options are applied last and win.
func NewFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return New(cfg.BaseURL, append(cfg.Options(), opts...)...)
}
