//go:build integration
// +build integration

package client_test

import (
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

// TestMain waits for the registry's /api/ping endpoint before running tests.
func TestMain(m *testing.M) {
	waitForPong(backendURL(), 30*time.Second)
	os.Exit(m.Run())
}

func backendURL() string {
	if u := os.Getenv("TEST_BACKEND_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func waitForPong(baseURL string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/api/ping")
		if err == nil && resp != nil {
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK && strings.Contains(string(body), "Pong") {
				return
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
	// If not healthy within timeout, fail fast
	panic("search backend did not answer /api/ping within timeout")
}
