package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/youhong316/harbor/client/internal/api"
	"github.com/youhong316/harbor/client/internal/retry"
	"github.com/youhong316/harbor/client/internal/types"
	"github.com/youhong316/harbor/devmode"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client performs global searches against a Harbor-compatible /api/search
// endpoint. It holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client     // default transport; nil when a custom HTTPClient was injected
	doer    types.HTTPClient // every request goes through here
	options types.RequestOptions

	escape    bool
	retry     retry.Policy
	requestID bool
	debug     bool

	username string
	password string

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the given base URL (e.g. "https://harbor.example.com").
// An empty base URL produces relative request URLs, which only an injected
// HTTPClient can serve.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		options: types.DefaultGetOptions(),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		c.debug = true
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.http != nil {
		if c.debug {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		c.doer = c.http
	}
	return c, nil
}

// NewWithDevMode constructs a Client that authenticates with the fixture
// server's well-known credentials.
func NewWithDevMode(baseURL string, opts ...Option) (*Client, error) {
	opts = append([]Option{WithBasicAuth(devmode.Username, devmode.Password)}, opts...)
	return New(baseURL, opts...)
}

// Close releases idle connections held by the default transport. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.http != nil {
		c.http.CloseIdleConnections()
	}
	return nil
}

// BaseURL returns the configured endpoint root.
func (c *Client) BaseURL() string { return c.baseURL }

// do decorates the request with credentials and correlation headers and
// hands it to the transport. Transport errors pass through untouched.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	if c.requestID {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}
	return c.doer.Do(req)
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

// --------------------------------------------------------------------
// Search operations - delegated to internal/api
// --------------------------------------------------------------------

// Search looks up projects, repositories and charts matching term.
//
// The term is appended to "/api/search?q=" verbatim; see WithEscapedTerms.
// Exactly one GET is issued unless WithRetry is set. Transport and JSON
// errors are returned as produced; a non-2xx status yields a *StatusError.
func (c *Client) Search(ctx context.Context, term string) (*SearchResults, error) {
	var sr SearchResults
	if err := c.SearchInto(ctx, term, &sr); err != nil {
		return nil, err
	}
	return &sr, nil
}

// SearchInto is Search for callers that bring their own result shape; the
// response body is decoded into out.
func (c *Client) SearchInto(ctx context.Context, term string, out any) error {
	start := time.Now()
	err := api.Search(ctx, doerFunc(c.do), api.SearchParams{
		BaseURL: c.baseURL,
		Term:    term,
		Options: c.options,
		Escape:  c.escape,
		Retry:   c.retry,
	}, out)
	observeSearch(start, err)
	return err
}

// Go starts Search in its own goroutine and returns immediately. Calls are
// independent; they may complete in any order.
func (c *Client) Go(ctx context.Context, term string) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.res, p.err = c.Search(ctx, term)
	}()
	return p
}

// Pending is the eventual outcome of a search started with Go.
type Pending struct {
	done chan struct{}
	res  *SearchResults
	err  error
}

// Done is closed once the search has completed.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the search completes or ctx ends. Abandoning the wait
// does not stop the request; cancel the context given to Go for that.
func (p *Pending) Wait(ctx context.Context) (*SearchResults, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return p.res, p.err
	}
}
