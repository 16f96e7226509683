// internal/testutil/mocks.go
package testutil

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MockSource es un mock genérico que satisface ports.Source sin importar el paquete.
type MockSource struct {
	SourceName string
	Auth       bool

	// Names se envía como único lote cuando RunFunc y Err son nil.
	Names []string
	Err   error
	Delay time.Duration

	RunFunc func(ctx context.Context, host string, out chan<- []string) error

	calls atomic.Int64
	mu    sync.Mutex
	hosts []string
}

func (m *MockSource) Name() string       { return m.SourceName }
func (m *MockSource) RequiresAuth() bool { return m.Auth }

// Run simula una consulta al proveedor.
func (m *MockSource) Run(ctx context.Context, host string, out chan<- []string) error {
	m.calls.Add(1)
	m.mu.Lock()
	m.hosts = append(m.hosts, host)
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if m.RunFunc != nil {
		return m.RunFunc(ctx, host, out)
	}
	if m.Err != nil {
		return m.Err
	}
	if len(m.Names) == 0 {
		return nil
	}

	batch := append([]string(nil), m.Names...)
	select {
	case out <- batch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Calls retorna cuántas veces se ejecutó Run.
func (m *MockSource) Calls() int {
	return int(m.calls.Load())
}

// Hosts retorna los hosts recibidos, en orden de llegada.
func (m *MockSource) Hosts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.hosts...)
}
