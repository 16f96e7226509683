// internal/core/ports/source.go
package ports

import (
	"context"
)

// Source es el port primario para todas las fuentes de datos de vita.
// Cada proveedor pasivo (API pública o con credenciales) implementa esta interfaz.
type Source interface {
	// Name retorna el nombre único de la fuente (ej: "crtsh", "alienvault")
	Name() string

	// RequiresAuth indica si la fuente necesita credenciales del proveedor
	RequiresAuth() bool

	// Run consulta al proveedor por un host y envía como máximo un lote
	// no vacío de nombres candidatos a out. Un único intento, sin reintentos.
	//
	// Retorna nil si envió un lote, *domain.SourceError si el proveedor no
	// tiene datos, *domain.AuthError si rechazó la autenticación y
	// *domain.KeyError si faltan credenciales (sin tocar la red).
	Run(ctx context.Context, host string, out chan<- []string) error
}

// SourceMetadata contiene metadatos sobre una fuente.
type SourceMetadata struct {
	Name         string
	Description  string
	RequiresAuth bool

	// EnvVars lista las variables de credenciales que la fuente consulta
	EnvVars []string
}
