package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	apierrors "github.com/youhong316/harbor/client/internal/errors"
	"github.com/youhong316/harbor/client/internal/retry"
	"github.com/youhong316/harbor/client/internal/types"
)

// SearchParams carries the per-client settings a search needs.
type SearchParams struct {
	BaseURL string
	Term    string
	Options types.RequestOptions
	Escape  bool
	Retry   retry.Policy
}

// Search issues GET /api/search?q=<term> and decodes the JSON body into out.
// Transport and decode errors are returned unchanged; a non-2xx status
// becomes an *errors.ClassifiedError.
func Search(ctx context.Context, httpClient HTTPClient, p SearchParams, out any) error {
	target := SearchURL(p.BaseURL, p.Term, p.Escape)

	var resp *http.Response
	err := retry.Do(ctx, p.Retry, func(ctx context.Context) error {
		r, err := get(ctx, httpClient, target, p.Options)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	// The body must hold exactly one JSON value; empty or trailing input is a syntax error.
	return json.Unmarshal(body, out)
}

// get performs one GET and checks the status. On success the caller owns resp.Body.
func get(ctx context.Context, httpClient HTTPClient, target string, opts types.RequestOptions) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, err
	}
	opts.Apply(req)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, apierrors.NewHTTPError(resp.StatusCode, string(body), "search")
	}
	return resp, nil
}

func queryEscape(term string) string { return url.QueryEscape(term) }
