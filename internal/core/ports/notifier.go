// internal/core/ports/notifier.go
package ports

import (
	"time"

	"vita/internal/core/domain"
)

// Observer recibe el resultado de cada unidad (host, fuente) al terminar.
// Desacopla el runner de la presentación (resumen en terminal, métricas).
// Las implementaciones deben ser seguras para uso concurrente.
type Observer interface {
	SourceFinished(outcome Outcome)
}

// Outcome describe el resultado de una unidad de trabajo.
type Outcome struct {
	Source   string
	Host     string
	Names    int
	Kind     domain.ErrorKind
	Err      error
	Duration time.Duration
}

// Failed indica si la unidad terminó con error.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// ObserverFunc adapta una función a Observer.
type ObserverFunc func(outcome Outcome)

func (f ObserverFunc) SourceFinished(outcome Outcome) { f(outcome) }
