// Package recondev consulta la API de búsqueda de recon.dev.
package recondev

import (
	"context"
	"net/url"

	"vita/internal/core/ports"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
	"vita/internal/platform/registry"
	"vita/internal/sources/common"
)

const (
	Name           = "recondev"
	defaultBaseURL = "https://api.recon.dev"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger), nil
		},
		registry.Meta("recon.dev domain search"),
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

type result struct {
	RawDomains []string `json:"rawDomains"`
}

func (s *Source) buildURL(host string) string {
	return s.URL("/search?domain=%s", url.QueryEscape(host))
}

// Run ejecuta la consulta. Un cuerpo null significa que no hay datos.
func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	var results []result
	if err := s.GetJSON(ctx, host, s.buildURL(host), nil, &results); err != nil {
		return err
	}

	var names []string
	for _, r := range results {
		names = append(names, r.RawDomains...)
	}
	return s.Emit(ctx, out, host, names)
}
