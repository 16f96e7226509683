// internal/platform/registry/source_registry.go
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"vita/internal/core/domain"
	"vita/internal/core/ports"
	"vita/internal/platform/logx"
)

// SourceRegistry gestiona el registro y construcción de sources.
// Implementa el patrón Registry + Factory para desacoplar la creación
// de sources del código de aplicación. No hay instancia global: el
// entrypoint crea el registry y lo rellena explícitamente.
type SourceRegistry struct {
	mu        sync.RWMutex
	factories map[string]SourceFactory
	metadata  map[string]ports.SourceMetadata
	logger    logx.Logger
}

// SourceFactory crea una instancia de Source con las dependencias compartidas de la ejecución.
type SourceFactory func(deps Deps) (ports.Source, error)

// NewSourceRegistry crea un nuevo registry de sources.
func NewSourceRegistry(logger logx.Logger) *SourceRegistry {
	return &SourceRegistry{
		factories: make(map[string]SourceFactory),
		metadata:  make(map[string]ports.SourceMetadata),
		logger:    logger.With("component", "source-registry"),
	}
}

// Register registra una source factory con su metadata.
// Los nombres se guardan en minúsculas.
func (r *SourceRegistry) Register(name string, factory SourceFactory, meta ports.SourceMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("source name cannot be empty")
	}

	if factory == nil {
		return fmt.Errorf("factory cannot be nil for source %s", name)
	}

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("source %s is already registered", name)
	}

	meta.Name = name
	r.factories[name] = factory
	r.metadata[name] = meta
	r.logger.Debug("source registered", "name", name, "auth", meta.RequiresAuth)

	return nil
}

// MustRegister es Register para el cableado estático de fuentes; un error
// indica un nombre duplicado en el código y provoca panic.
func (r *SourceRegistry) MustRegister(name string, factory SourceFactory, meta ports.SourceMetadata) {
	if err := r.Register(name, factory, meta); err != nil {
		panic(err)
	}
}

// Build construye el conjunto activo: las fuentes del perfil menos las excluidas.
//
// Las exclusiones se comparan sin distinguir mayúsculas. Excluir una fuente
// que no pertenece al perfil no tiene efecto; un nombre que no está
// registrado tampoco, pero se avisa en el log.
func (r *SourceRegistry) Build(profile domain.SourceProfile, exclude []string, deps Deps) (*Set, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !profile.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidProfile, profile)
	}
	if deps.Logger == nil {
		deps.Logger = r.logger
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, raw := range exclude {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if _, ok := r.factories[name]; !ok {
			// no-op; el CLI los informa con Unknown
			continue
		}
		excluded[name] = struct{}{}
	}

	names := make([]string, 0, len(r.factories))
	for name, meta := range r.metadata {
		if !profile.Includes(meta.RequiresAuth) {
			continue
		}
		if _, skip := excluded[name]; skip {
			r.logger.Debug("source excluded", "source", name)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	sources := make([]ports.Source, 0, len(names))
	for _, name := range names {
		source, err := r.factories[name](deps)
		if err != nil {
			r.logger.Warn("failed to build source, skipping", "source", name, "error", err.Error())
			continue
		}
		sources = append(sources, source)
	}

	if len(sources) == 0 {
		return nil, domain.ErrNoSourcesAvailable
	}

	deps.Logger.Debug("sources built", "count", len(sources), "profile", profile.String(), "excluded", len(excluded))
	return newSet(sources), nil
}

// List retorna los nombres de todas las sources registradas.
func (r *SourceRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAllMetadata retorna el metadata de todas las sources, ordenado por nombre.
func (r *SourceRegistry) GetAllMetadata() []ports.SourceMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ports.SourceMetadata, 0, len(r.metadata))
	for _, meta := range r.metadata {
		result = append(result, meta)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Unknown retorna los nombres de names que no corresponden a ninguna fuente registrada.
func (r *SourceRegistry) Unknown(names []string) []string {
	var unknown []string
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name != "" && !r.IsRegistered(name) {
			unknown = append(unknown, raw)
		}
	}
	return unknown
}

// IsRegistered verifica si una source está registrada.
func (r *SourceRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[strings.ToLower(name)]
	return exists
}
