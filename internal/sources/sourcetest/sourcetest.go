// Package sourcetest holds helpers shared by provider tests: a fake
// provider endpoint and a one-shot runner for a single (host, source) unit.
package sourcetest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
)

// Runner is the subset of ports.Source exercised by Run.
type Runner interface {
	Run(ctx context.Context, host string, out chan<- []string) error
}

// Server is an httptest.Server that records the requests it receives.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

// NewServer starts a fake provider. It is closed when the test ends.
func NewServer(t *testing.T, handler http.HandlerFunc) *Server {
	t.Helper()
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Clone(context.Background()))
		s.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// JSON answers every request with status and body as application/json.
func JSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// Text answers every request with status and a plain body.
func Text(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// Requests returns the recorded requests.
func (s *Server) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}

// Last returns the most recent request, or nil.
func (s *Server) Last() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

// Client returns a shared client with a short timeout.
func Client(t *testing.T) *httpclient.Client {
	t.Helper()
	c, err := httpclient.New(httpclient.Config{Timeout: 5 * time.Second}, logx.NewNop())
	require.NoError(t, err)
	return c
}

// Run executes src once for host and returns the emitted names. Only one
// batch is expected per unit.
func Run(t *testing.T, src Runner, host string) ([]string, error) {
	t.Helper()
	out := make(chan []string, 1)
	err := src.Run(context.Background(), host, out)
	close(out)

	var names []string
	for batch := range out {
		names = append(names, batch...)
	}
	return names, err
}
