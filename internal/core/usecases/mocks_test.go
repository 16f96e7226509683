// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"vita/internal/core/ports"
	"vita/internal/testutil"
)

// memorySink es un ports.NameSink en memoria.
type memorySink struct {
	mu     sync.Mutex
	names  []string
	failAt int
	closed bool
}

var errSinkFull = errors.New("sink full")

func (s *memorySink) Write(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAt > 0 && len(s.names) >= s.failAt {
		return errSinkFull
	}
	s.names = append(s.names, name)
	return nil
}

func (s *memorySink) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func (s *memorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}

// recordingObserver guarda los outcomes recibidos.
type recordingObserver struct {
	mu       sync.Mutex
	outcomes []ports.Outcome
}

func (o *recordingObserver) SourceFinished(outcome ports.Outcome) {
	o.mu.Lock()
	o.outcomes = append(o.outcomes, outcome)
	o.mu.Unlock()
}

func (o *recordingObserver) Outcomes() []ports.Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]ports.Outcome(nil), o.outcomes...)
}

// gauge mide cuántas unidades están activas a la vez.
type gauge struct {
	current atomic.Int64
	peak    atomic.Int64
}

func (g *gauge) enter() {
	n := g.current.Add(1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			return
		}
	}
}

func (g *gauge) leave() { g.current.Add(-1) }

// gaugedSource crea una fuente que registra su concurrencia en g y tarda d.
func gaugedSource(name string, g *gauge, d time.Duration) *testutil.MockSource {
	return &testutil.MockSource{
		SourceName: name,
		RunFunc: func(ctx context.Context, host string, out chan<- []string) error {
			g.enter()
			defer g.leave()
			select {
			case <-time.After(d):
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case out <- []string{name + "." + host}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
}

func toSources(mocks ...*testutil.MockSource) []ports.Source {
	out := make([]ports.Source, len(mocks))
	for i, m := range mocks {
		out[i] = m
	}
	return out
}
