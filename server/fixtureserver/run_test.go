package fixtureserver

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youhong316/harbor/server/internal/config"
)

func TestHandler_ServesSampleCatalog(t *testing.T) {
	h, err := Handler("", "", "")
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/search?q=library")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_BadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects: [\n"), 0o600))
	_, err := Handler(path, "", "")
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.NewForTesting()
	applyOverrides(cfg, Overrides{Port: 9999, CatalogPath: "c.yaml", Username: "u", Password: "p", LogLevel: "warn"})
	assert.Equal(t, 9999, cfg.HTTPPort)
	assert.Equal(t, "c.yaml", cfg.CatalogPath)
	assert.Equal(t, "u", cfg.Username)
	assert.Equal(t, "p", cfg.Password)
	assert.Equal(t, "warn", cfg.LogLevel)

	applyOverrides(cfg, Overrides{})
	assert.Equal(t, 9999, cfg.HTTPPort, "zero overrides keep values")
}

func TestRunContext_StopsOnCancel(t *testing.T) {
	t.Setenv("HARBOR_FIXTURE_LOG_LEVEL", "error")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunContext(ctx, Overrides{Port: freePort(t)}) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunContext_InvalidOverride(t *testing.T) {
	err := RunContext(context.Background(), Overrides{LogLevel: "chatty"})
	assert.Error(t, err)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}
