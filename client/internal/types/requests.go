package types

import "net/http"

// ------------------------------
// Request Types
// ------------------------------

// RequestOptions holds the fixed options applied to every search request
type RequestOptions struct {
	Header http.Header
}

// DefaultGetOptions mirrors the portal's GET options: JSON in and out, never served from cache.
func DefaultGetOptions() RequestOptions {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set("Cache-Control", "no-cache")
	h.Set("Pragma", "no-cache")
	return RequestOptions{Header: h}
}

// Clone returns a deep copy so callers cannot mutate shared options.
func (o RequestOptions) Clone() RequestOptions {
	return RequestOptions{Header: o.Header.Clone()}
}

// Apply copies the configured headers onto req.
func (o RequestOptions) Apply(req *http.Request) {
	for k, vs := range o.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
}
