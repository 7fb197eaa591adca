package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/youhong316/harbor/client"
	"github.com/youhong316/harbor/devmode"
	"github.com/youhong316/harbor/mcp"
	"github.com/youhong316/harbor/server/fixtureserver"
)

func newFixture(t *testing.T) *httptest.Server {
	t.Helper()
	h, err := fixtureserver.Handler("", devmode.Username, devmode.Password)
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", "yaml"} {
		_, err := parseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := parseFormat("xml")
	assert.Error(t, err)
}

func TestRunSearch_JSON(t *testing.T) {
	srv := newFixture(t)
	c, err := client.New(srv.URL)
	require.NoError(t, err)
	defer c.Close()

	var out bytes.Buffer
	require.NoError(t, runSearch(context.Background(), c, "nginx", formatJSON, &out))

	assert.Contains(t, out.String(), `"repository_name": "library/nginx"`)
	assert.NotContains(t, out.String(), "private-team")
}

func TestRunSearch_YAMLKeepsWireNames(t *testing.T) {
	srv := newFixture(t)
	c, err := client.NewWithDevMode(srv.URL)
	require.NoError(t, err)
	defer c.Close()

	var out bytes.Buffer
	require.NoError(t, runSearch(context.Background(), c, "nginx", formatYAML, &out))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	assert.Contains(t, doc, "project")
	assert.Contains(t, doc, "repository")
	assert.Contains(t, out.String(), "private-team/nginx-proxy")
}

func TestRunSearch_Table(t *testing.T) {
	srv := newFixture(t)
	c, err := client.New(srv.URL)
	require.NoError(t, err)
	defer c.Close()

	var out bytes.Buffer
	require.NoError(t, runSearch(context.Background(), c, "", formatTable, &out))

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "PROJECT"))
	assert.Contains(t, s, "REPOSITORY")
	assert.Contains(t, s, "library/redis")
	assert.Contains(t, s, "CHART")
}

type failingSearcher struct{ err error }

func (f failingSearcher) Search(context.Context, string) (*client.SearchResults, error) {
	return nil, f.err
}

func TestRunSearch_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	var out bytes.Buffer
	err := runSearch(context.Background(), failingSearcher{err: boom}, "x", formatJSON, &out)
	assert.Same(t, boom, err)
	assert.Zero(t, out.Len())
}

func TestSearchCommand_Flags(t *testing.T) {
	srv := newFixture(t)
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"search", "redis", "--api", srv.URL, "-o", "json", "--retry", "2", "--request-id"})
	t.Cleanup(func() { apiFlag, userFlag, passwordFlag = "", "", "" })

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "library/redis")
}

func TestSearchCommand_BadCredentials(t *testing.T) {
	srv := newFixture(t)
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"search", "redis", "--api", srv.URL, "--user", "admin", "--password", "wrong"})
	t.Cleanup(func() { apiFlag, userFlag, passwordFlag = "", "", "" })

	err := root.Execute()
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
}

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		apiFlag, userFlag, passwordFlag = "", "", ""
		timeoutFlag, debugFlag = 0, false
		runFixture, runMCP = fixtureserver.Run, mcp.RunWithClientConfig
	})
}

func TestMCPCommand_APIFlagReachesClientConfig(t *testing.T) {
	resetFlags(t)
	t.Setenv("HARBOR_SEARCH_BASE_URL", "http://from-env:8080")

	var (
		gotCfg  *client.Config
		gotOpts []client.Option
	)
	runMCP = func(cfg *client.Config, opts ...client.Option) error {
		gotCfg, gotOpts = cfg, opts
		return nil
	}

	root := newRootCmd()
	root.SetArgs([]string{"--api", "https://registry.example.com", "--user", "admin", "--password", "pw", "mcp"})
	require.NoError(t, root.Execute())

	require.NotNil(t, gotCfg)
	assert.Equal(t, "https://registry.example.com", gotCfg.BaseURL)
	assert.Len(t, gotOpts, 1)
}

func TestMCPCommand_EnvBaseURLWithoutFlag(t *testing.T) {
	resetFlags(t)
	t.Setenv("HARBOR_SEARCH_BASE_URL", "http://from-env:8080")

	var gotCfg *client.Config
	runMCP = func(cfg *client.Config, _ ...client.Option) error {
		gotCfg = cfg
		return nil
	}

	root := newRootCmd()
	root.SetArgs([]string{"mcp"})
	require.NoError(t, root.Execute())
	require.NotNil(t, gotCfg)
	assert.Equal(t, "http://from-env:8080", gotCfg.BaseURL)
}

func TestFixtureServerCommand_Overrides(t *testing.T) {
	resetFlags(t)

	var got fixtureserver.Overrides
	runFixture = func(o fixtureserver.Overrides) error {
		got = o
		return nil
	}

	root := newRootCmd()
	root.SetArgs([]string{"fixture-server", "--port", "9090", "--catalog", "c.yaml", "--log-level", "warn", "--user", "ops", "--password", "s3cret"})
	require.NoError(t, root.Execute())

	assert.Equal(t, fixtureserver.Overrides{Port: 9090, CatalogPath: "c.yaml", Username: "ops", Password: "s3cret", LogLevel: "warn"}, got)
}
