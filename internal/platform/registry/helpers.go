package registry

import (
	"vita/internal/core/ports"
	"vita/internal/platform/credentials"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
)

// Deps agrupa los recursos compartidos que reciben las factories.
// Todos son de solo lectura durante la ejecución.
type Deps struct {
	Client      *httpclient.Client
	Credentials *credentials.Store
	Logger      logx.Logger
}

// Meta construye metadata para una fuente.
func Meta(description string, envVars ...string) ports.SourceMetadata {
	return ports.SourceMetadata{
		Description:  description,
		RequiresAuth: len(envVars) > 0,
		EnvVars:      envVars,
	}
}

// OptionalMeta construye metadata para una fuente gratuita que aprovecha
// una clave opcional si está disponible.
func OptionalMeta(description string, envVars ...string) ports.SourceMetadata {
	return ports.SourceMetadata{
		Description: description,
		EnvVars:     envVars,
	}
}
