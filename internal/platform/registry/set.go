package registry

import (
	"vita/internal/core/ports"
)

// Set es el conjunto activo de fuentes de una ejecución. Inmutable tras Build.
type Set struct {
	sources []ports.Source
}

func newSet(sources []ports.Source) *Set {
	return &Set{sources: sources}
}

// Sources retorna una copia de las fuentes, ordenadas por nombre.
func (s *Set) Sources() []ports.Source {
	return append([]ports.Source(nil), s.sources...)
}

// Names retorna los nombres de las fuentes activas.
func (s *Set) Names() []string {
	names := make([]string, len(s.sources))
	for i, src := range s.sources {
		names[i] = src.Name()
	}
	return names
}

func (s *Set) Len() int {
	return len(s.sources)
}
