package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youhong316/harbor/devmode"
)

func TestConfigLoad_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "", cfg.CatalogPath)
	assert.Equal(t, devmode.Username, cfg.Username)
	assert.Equal(t, devmode.Password, cfg.Password)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	t.Setenv("HARBOR_FIXTURE_HTTP_PORT", "9090")
	t.Setenv("HARBOR_FIXTURE_CATALOG_PATH", "/tmp/catalog.yaml")
	t.Setenv("HARBOR_FIXTURE_USERNAME", "robot")
	t.Setenv("HARBOR_FIXTURE_PASSWORD", "s3cret")
	t.Setenv("HARBOR_FIXTURE_LOG_LEVEL", "debug")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "/tmp/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, "robot", cfg.Username)
	assert.Equal(t, "s3cret", cfg.Password)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestConfigLoad_Invalid(t *testing.T) {
	t.Setenv("HARBOR_FIXTURE_LOG_LEVEL", "loud")
	_, err := New()
	assert.ErrorContains(t, err, "invalid LOG_LEVEL")

	t.Setenv("HARBOR_FIXTURE_LOG_LEVEL", "info")
	t.Setenv("HARBOR_FIXTURE_HTTP_PORT", "70000")
	_, err = New()
	assert.ErrorContains(t, err, "invalid HTTP_PORT")

	t.Setenv("HARBOR_FIXTURE_HTTP_PORT", "not-a-number")
	_, err = New()
	assert.Error(t, err)
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0, cfg.HTTPPort)
}
