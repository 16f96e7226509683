// Package hackertarget consulta la API de búsqueda de hosts de HackerTarget.
package hackertarget

import (
	"context"
	"net/url"
	"strings"

	"vita/internal/core/domain"
	"vita/internal/core/ports"
	"vita/internal/platform/errors"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
	"vita/internal/platform/registry"
	"vita/internal/sources/common"
)

const (
	Name           = "hackertarget"
	defaultBaseURL = "https://api.hackertarget.com"

	// Mensajes que la API devuelve con status 200.
	apiError     = "error check your search parameter"
	apiQuota     = "API count exceeded"
	apiNoRecords = "No records found"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger), nil
		},
		registry.Meta("HackerTarget host search"),
	)
}

type Source struct {
	common.BaseSource
}

func New(client *httpclient.Client, logger logx.Logger) *Source {
	return &Source{
		BaseSource: common.NewBaseSource(client, logger, common.BaseConfig{
			Name:    Name,
			BaseURL: defaultBaseURL,
		}),
	}
}

func (s *Source) buildURL(host string) string {
	return s.URL("/hostsearch/?q=%s", url.QueryEscape(host))
}

// Run ejecuta la consulta. La respuesta es texto, una línea "nombre,ip" por registro.
func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	body, err := s.GetText(ctx, host, s.buildURL(host), nil)
	if err != nil {
		return err
	}

	body = strings.TrimSpace(body)
	switch {
	case strings.HasPrefix(body, apiQuota):
		return domain.NewAuthError(Name, errors.ErrRateLimit)
	case body == apiError, strings.HasPrefix(body, apiNoRecords):
		return s.NoResults(host)
	}

	return s.Emit(ctx, out, host, parse(body))
}

func parse(body string) []string {
	var names []string
	for _, line := range strings.Split(body, "\n") {
		name, _, _ := strings.Cut(line, ",")
		names = append(names, name)
	}
	return names
}
