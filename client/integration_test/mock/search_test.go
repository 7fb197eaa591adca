package mock

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	client "github.com/youhong316/harbor/client"
)

func TestClient_Search_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method != http.MethodGet || r.URL.Path != "/api/search" {
			t.Errorf("expected GET /api/search, got %s %s", r.Method, r.URL.Path)
		}
		resp := client.SearchResults{
			Projects:     []client.Project{{ProjectID: 1, Name: "library"}},
			Repositories: []client.Repository{{ProjectName: "library", RepositoryName: "library/" + r.URL.Query().Get("q")}},
		}
		_ = json.NewEncoder(w).Encode(&resp)
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, client.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	res, err := c.Search(context.Background(), "nginx")
	if err != nil || len(res.Repositories) != 1 || res.Repositories[0].RepositoryName != "library/nginx" {
		t.Fatalf("Search: %+v err=%v", res, err)
	}
}

func TestClient_Search_ConcurrentCalls(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"project":[{"name":"` + r.URL.Query().Get("q") + `"}],"repository":[]}`))
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c.Close() }()

	terms := []string{"a", "b", "missing", "c"}
	var wg sync.WaitGroup
	errs := make([]error, len(terms))
	results := make([]*client.SearchResults, len(terms))
	for i, term := range terms {
		wg.Add(1)
		go func(i int, term string) {
			defer wg.Done()
			results[i], errs[i] = c.Search(context.Background(), term)
		}(i, term)
	}
	wg.Wait()

	for i, term := range terms {
		if term == "missing" {
			if !client.IsNotFound(errs[i]) {
				t.Fatalf("expected 404 for %q, got %v", term, errs[i])
			}
			continue
		}
		if errs[i] != nil || results[i].Projects[0].Name != term {
			t.Fatalf("%q: %+v %v", term, results[i], errs[i])
		}
	}
}
