package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
//
// Options are applied in order; the debug transport is installed after all
// options ran so it always wraps the final transport.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout bounds
// the total time spent on a single HTTP request. The value must be greater
// than zero. It has no effect after WithHTTPClient injected a non-*http.Client.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		if c.http != nil {
			c.http.Timeout = d
		}
		return nil
	}
}

// WithHTTPClient injects the transport used for every request.
//
// An *http.Client is copied so the debug wrapper never mutates the caller's
// value. Any other HTTPClient (a test double, an instrumented client) is
// used as is; its errors reach the caller unchanged.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		if std, ok := hc.(*http.Client); ok {
			cp := *std
			c.http = &cp
			c.doer = nil
			return nil
		}
		c.http = nil
		c.doer = hc
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. Only applies to *http.Client transports.
//
// Do not enable this option in production environments as it increases
// verbosity and may include headers in logs.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = enabled
		return nil
	}
}

// WithRequestOptions replaces the fixed headers sent with every search.
// The options are copied; later changes by the caller have no effect.
func WithRequestOptions(opts RequestOptions) Option {
	return func(c *Client) error {
		if opts.Header == nil {
			opts.Header = make(http.Header)
		}
		c.options = opts.Clone()
		return nil
	}
}

// WithHeader adds one fixed header on top of the defaults.
func WithHeader(key, value string) Option {
	return func(c *Client) error {
		if key == "" {
			return fmt.Errorf("header name cannot be empty")
		}
		c.options = c.options.Clone()
		c.options.Header.Set(key, value)
		return nil
	}
}

// WithBasicAuth sends HTTP basic credentials with every request.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) error {
		if username == "" {
			return fmt.Errorf("username cannot be empty")
		}
		c.username, c.password = username, password
		return nil
	}
}

// WithEscapedTerms percent-encodes the search term before it is appended to
// the URL. This changes behavior: by default terms are sent raw, and a term
// containing '&', '#' or '%' corrupts the query string.
func WithEscapedTerms() Option {
	return func(c *Client) error {
		c.escape = true
		return nil
	}
}

// WithRetry re-issues a search up to maxAttempts times in total when the
// transport fails or the server answers with a recoverable status (5xx, 408,
// 429). The last error is returned unchanged. maxAttempts must be >= 1; 1
// keeps the default single-request behavior.
func WithRetry(maxAttempts int) Option {
	return func(c *Client) error {
		if maxAttempts < 1 {
			return fmt.Errorf("retry attempts must be >= 1")
		}
		c.retry.MaxAttempts = maxAttempts
		return nil
	}
}

// WithRetryBackoff tunes the exponential backoff used by WithRetry.
func WithRetryBackoff(base, maxInterval time.Duration) Option {
	return func(c *Client) error {
		if base <= 0 || maxInterval < base {
			return fmt.Errorf("invalid backoff: base=%s max=%s", base, maxInterval)
		}
		c.retry.BaseBackoff = base
		c.retry.MaxInterval = maxInterval
		return nil
	}
}

// WithRequestID tags each request with a fresh X-Request-Id header.
func WithRequestID() Option {
	return func(c *Client) error {
		c.requestID = true
		return nil
	}
}

var _ HTTPClient = (*http.Client)(nil)
