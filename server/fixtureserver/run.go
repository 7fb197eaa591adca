// Package fixtureserver runs a stand-in for Harbor's global search API backed
// by a catalog file, for local development and integration tests.
package fixtureserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	apihttp "github.com/youhong316/harbor/server/internal/api/http"
	"github.com/youhong316/harbor/server/internal/catalog"
	"github.com/youhong316/harbor/server/internal/config"
	"github.com/youhong316/harbor/server/internal/logger"
)

// Overrides replace environment configuration; zero values keep the env value.
type Overrides struct {
	Port        int
	CatalogPath string
	Username    string
	Password    string
	LogLevel    string
}

// Run starts the fixture HTTP server and blocks until SIGINT/SIGTERM or a server error.
func Run(o Overrides) error {
	ctx, stop := newServerContext()
	defer stop()
	return RunContext(ctx, o)
}

// RunContext is Run bound to ctx instead of process signals.
func RunContext(ctx context.Context, o Overrides) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	applyOverrides(cfg, o)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New("harbor-fixture", cfg.Level())

	handler, err := newHandler(cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to load catalog")
		return err
	}

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Str("catalog", catalogName(cfg.CatalogPath)).
		Msg("Fixture search service starting")

	server := newHTTPServer(ctx, cfg, handler)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// Handler builds the fixture router for embedding in tests (httptest.NewServer).
// An empty catalogPath serves the built-in sample catalog.
func Handler(catalogPath, username, password string) (http.Handler, error) {
	cfg := config.NewForTesting()
	cfg.CatalogPath = catalogPath
	if username != "" {
		cfg.Username, cfg.Password = username, password
	}
	return newHandler(cfg, zerolog.Nop())
}

func newHandler(cfg *config.Config, log zerolog.Logger) (http.Handler, error) {
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	search := apihttp.NewSearchHandler(cat, apihttp.Credentials{Username: cfg.Username, Password: cfg.Password}, log)
	return apihttp.NewRouter(search, log), nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Sample()
	}
	return catalog.Load(path)
}

func catalogName(path string) string {
	if path == "" {
		return "built-in sample"
	}
	return path
}

func applyOverrides(cfg *config.Config, o Overrides) {
	if o.Port != 0 {
		cfg.HTTPPort = o.Port
	}
	if o.CatalogPath != "" {
		cfg.CatalogPath = o.CatalogPath
	}
	if o.Username != "" {
		cfg.Username, cfg.Password = o.Username, o.Password
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen %s: %w", server.Addr, err)
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
