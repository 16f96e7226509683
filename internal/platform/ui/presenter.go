// internal/platform/ui/presenter.go
package ui

import (
	"time"

	"vita/internal/core/domain"
	"vita/internal/core/ports"
)

// Presenter muestra el progreso y el resumen de una ejecución en stderr.
// Recibe cada unidad terminada como ports.Observer, así que debe ser
// seguro para uso concurrente.
type Presenter interface {
	ports.Observer

	// Start muestra la configuración de la ejecución
	Start(info RunInfo)

	// Finish muestra el resumen final
	Finish(summary Summary)

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo contiene la información inicial de la ejecución
type RunInfo struct {
	RunID       string
	Hosts       []string
	Sources     []string
	Profile     domain.SourceProfile
	Filter      domain.FilterMode
	Concurrency int
	TimeoutS    int
}

// Summary contiene las estadísticas finales
type Summary struct {
	Duration  time.Duration
	Units     int
	Succeeded int
	Failures  map[domain.ErrorKind]int
	// Raw son los nombres recibidos de las fuentes; Names los que pasaron el filtro.
	Raw   int
	Names int
}

// Failed retorna el total de unidades fallidas.
func (s Summary) Failed() int {
	n := 0
	for _, c := range s.Failures {
		n += c
	}
	return n
}
