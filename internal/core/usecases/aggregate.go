// internal/core/usecases/aggregate.go
package usecases

import (
	"sort"
	"sync"
)

// AggregatedSet acumula nombres de todos los lotes sin duplicados.
// Es la forma materializada del canal del runner, usada por la salida JSON.
type AggregatedSet struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

// NewAggregatedSet crea un conjunto vacío.
func NewAggregatedSet() *AggregatedSet {
	return &AggregatedSet{names: make(map[string]struct{})}
}

// Add incorpora un lote. Los valores vacíos se ignoran.
func (s *AggregatedSet) Add(batch []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range batch {
		if n == "" {
			continue
		}
		s.names[n] = struct{}{}
	}
}

func (s *AggregatedSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

func (s *AggregatedSet) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.names[name]
	return ok
}

// Names retorna una copia ordenada.
func (s *AggregatedSet) Names() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	s.mu.RUnlock()

	sort.Strings(out)
	return out
}

// Collect drena ch hasta su cierre.
func Collect(ch <-chan []string) *AggregatedSet {
	set := NewAggregatedSet()
	for batch := range ch {
		set.Add(batch)
	}
	return set
}
