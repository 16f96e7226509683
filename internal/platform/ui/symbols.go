// internal/platform/ui/symbols.go
package ui

import (
	"github.com/pterm/pterm"

	"vita/internal/core/domain"
)

// Status representa el estado final de una fuente
type Status int

const (
	StatusSuccess Status = iota
	StatusWarning        // terminó sin resultados
	StatusSkipped        // faltan credenciales
	StatusError
)

// StatusFromKind traduce la clase de error de una unidad a su estado visual.
func StatusFromKind(kind domain.ErrorKind) Status {
	switch kind {
	case domain.KindNone:
		return StatusSuccess
	case domain.KindSource:
		return StatusWarning
	case domain.KindKey:
		return StatusSkipped
	default:
		return StatusError
	}
}

// String convierte el status a string
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusWarning:
		return "empty"
	case StatusSkipped:
		return "skipped"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Symbol retorna el símbolo Unicode para cada estado
func (s Status) Symbol() string {
	switch s {
	case StatusSuccess:
		return "✓"
	case StatusWarning:
		return "⚠"
	case StatusSkipped:
		return "⊘"
	case StatusError:
		return "✗"
	default:
		return "?"
	}
}

// Color retorna el color pterm para cada estado
func (s Status) Color() pterm.Color {
	switch s {
	case StatusSuccess:
		return pterm.FgGreen
	case StatusWarning:
		return pterm.FgYellow
	case StatusSkipped:
		return pterm.FgGray
	case StatusError:
		return pterm.FgRed
	default:
		return pterm.FgDefault
	}
}

// Style retorna un pterm.Style configurado para el estado
func (s Status) Style() *pterm.Style {
	return pterm.NewStyle(s.Color())
}

var (
	IconTarget  = "🎯"
	IconTime    = "⏱"
	IconSources = "🔌"
	IconNames   = "📦"
)

