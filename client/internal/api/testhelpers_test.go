package api

import (
	"errors"
	"net/http"
)

// errBoom simulates a transport failure.
var errBoom = errors.New("boom")

// doerFunc adapts a function to HTTPClient.
type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }
