package client

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

func ioNopCloser(s string) io.ReadCloser { return io.NopCloser(strings.NewReader(s)) }

// stubDoer records requests and answers with a fixed body, status or error.
type stubDoer struct {
	mu     sync.Mutex
	reqs   []*http.Request
	status int
	body   string
	err    error
}

func (s *stubDoer) Do(r *http.Request) (*http.Response, error) {
	s.mu.Lock()
	s.reqs = append(s.reqs, r)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	status := s.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{StatusCode: status, Body: ioNopCloser(s.body), Header: make(http.Header), Request: r}, nil
}

func (s *stubDoer) last() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.reqs) == 0 {
		return nil
	}
	return s.reqs[len(s.reqs)-1]
}

func (s *stubDoer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reqs)
}
