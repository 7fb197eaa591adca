package mcp

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/youhong316/harbor/client"
	"github.com/youhong316/harbor/mcp/internal/handlers"
)

// Config holds all settings for the MCP server, read from HARBOR_MCP_* variables.
// The search client itself is configured through HARBOR_SEARCH_* (see client.LoadConfig).
type Config struct {
	ServerName      string        `envconfig:"SERVER_NAME" default:"harbor-search-mcp"`
	ServerVersion   string        `envconfig:"SERVER_VERSION" default:"0.1.0"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":11546"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	HTTPReadTimeout time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	HTTPIdleTimeout time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
	ForceStdio      bool          `envconfig:"STDIO" default:"false"`
	ForceHTTP       bool          `envconfig:"HTTP" default:"false"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("HARBOR_MCP", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// initLogger initializes the logger with the configured level
func (c *Config) initLogger() {
	zerolog.SetGlobalLevel(parseLogLevel(c.LogLevel))
	// stdout carries the stdio protocol; logs go to stderr.
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Caller().Logger()
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds the MCP server with the search tool registered.
func NewServer(cfg *Config, sdk handlers.Searcher) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		server.WithToolCapabilities(true),
	)
	for name, h := range map[string]toolRegisterer{
		"search": handlers.NewSearchHandler(sdk),
	} {
		if err := h.RegisterTools(s); err != nil {
			log.Error().Err(err).Msgf("Failed to register %s tools", name)
			return nil, err
		}
	}
	return s, nil
}

// RunMCPServer starts the MCP server using environment configuration.
// Extra client options are applied on top of the HARBOR_SEARCH_* settings.
func RunMCPServer(opts ...client.Option) error {
	clientCfg, err := client.LoadConfig()
	if err != nil {
		return err
	}
	return RunWithClientConfig(clientCfg, opts...)
}

// RunWithClientConfig is RunMCPServer with the search client settings supplied
// by the caller, e.g. after command-line overrides were applied.
func RunWithClientConfig(clientCfg *client.Config, opts ...client.Option) error {
	if clientCfg == nil {
		return errors.New("client config cannot be nil")
	}
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	cfg.initLogger()

	log.Info().Str("harbor_url", clientCfg.BaseURL).Msg("Creating search client")
	sdk, err := client.NewFromConfig(clientCfg, opts...)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to create client")
		return err
	}
	defer func() { _ = sdk.Close() }()

	s, err := NewServer(cfg, sdk)
	if err != nil {
		return err
	}

	if shouldUseStdio(cfg) {
		log.Info().Msg("Starting harbor search MCP server (stdio transport)")
		return server.ServeStdio(s)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return serveHTTP(ctx, cfg, s)
}

// serveHTTP serves Streamable HTTP on cfg.HTTPAddr until ctx ends.
func serveHTTP(ctx context.Context, cfg *Config, s *server.MCPServer) error {
	log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting harbor search MCP server (Streamable HTTP)")

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      streamSrv,
		ReadTimeout:  cfg.HTTPReadTimeout, // Keep short for request parsing
		WriteTimeout: 0,                   // No deadline - required for SSE streaming
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("HTTP server error")
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during HTTP server shutdown")
	}
	if err := streamSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during MCP server shutdown")
	}
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// shouldUseStdio determines whether to use stdio transport based on configuration
func shouldUseStdio(cfg *Config) bool {
	if cfg.ForceStdio {
		return true
	}
	if cfg.ForceHTTP {
		return false
	}

	// Auto-detect: Use stdio if stdin is not a terminal (launched by another process)
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}

	// Default to HTTP if detection fails
	return false
}
