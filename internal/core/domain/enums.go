// internal/core/domain/enums.go
package domain

import (
	"fmt"
	"strings"
)

// FilterMode define cómo el post-procesador decide la relevancia de un nombre.
type FilterMode string

const (
	// FilterRootOnly acepta cualquier nombre cuyo dominio registrable
	// coincida con el de algún host de entrada.
	FilterRootOnly FilterMode = "root"

	// FilterSubOnly acepta solo subdominios estrictos de algún host de entrada.
	FilterSubOnly FilterMode = "sub"
)

// IsValid verifica si el modo de filtrado es válido.
func (m FilterMode) IsValid() bool {
	switch m {
	case FilterRootOnly, FilterSubOnly:
		return true
	default:
		return false
	}
}

// String retorna la representación string del modo.
func (m FilterMode) String() string {
	return string(m)
}

// ParseFilterMode convierte un string en FilterMode. Vacío equivale a RootOnly.
func ParseFilterMode(s string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "root", "root-only", "rootonly":
		return FilterRootOnly, nil
	case "sub", "sub-only", "subonly", "subs":
		return FilterSubOnly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFilterMode, s)
	}
}

// SourceProfile selecciona el catálogo de fuentes activas.
type SourceProfile string

const (
	// ProfileFree incluye solo fuentes que no requieren credenciales.
	ProfileFree SourceProfile = "free"

	// ProfileAll incluye todas las fuentes registradas.
	ProfileAll SourceProfile = "all"
)

// IsValid verifica si el perfil es válido.
func (p SourceProfile) IsValid() bool {
	return p == ProfileFree || p == ProfileAll
}

// String retorna la representación string del perfil.
func (p SourceProfile) String() string {
	return string(p)
}

// Includes indica si una fuente con o sin auth pertenece al perfil.
func (p SourceProfile) Includes(requiresAuth bool) bool {
	switch p {
	case ProfileAll:
		return true
	case ProfileFree:
		return !requiresAuth
	default:
		return false
	}
}

// ProfileFromAll traduce el flag --all a un perfil.
func ProfileFromAll(all bool) SourceProfile {
	if all {
		return ProfileAll
	}
	return ProfileFree
}

// RunState describe el ciclo de vida de una ejecución del runner.
type RunState int32

const (
	RunIdle RunState = iota
	RunDispatching
	RunDraining
	RunClosed
)

// String retorna la representación string del estado.
func (s RunState) String() string {
	switch s {
	case RunIdle:
		return "idle"
	case RunDispatching:
		return "dispatching"
	case RunDraining:
		return "draining"
	case RunClosed:
		return "closed"
	default:
		return "unknown"
	}
}
