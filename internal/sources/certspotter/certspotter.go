// Package certspotter consulta la API de emisiones de Cert Spotter (SSLMate).
package certspotter

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
	Name           = "certspotter"
	defaultBaseURL = "https://api.certspotter.com"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger), nil
		},
		registry.Meta("Cert Spotter certificate issuances"),
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

type issuance struct {
	DNSNames []string `json:"dns_names"`
}

func (s *Source) buildURL(host string) string {
	return s.URL("/v1/issuances?domain=%s&include_subdomains=true&expand=dns_names", url.QueryEscape(host))
}

// Run ejecuta la consulta para host.
func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	var issuances []issuance
	if err := s.GetJSON(ctx, host, s.buildURL(host), nil, &issuances); err != nil {
		return err
	}

	var names []string
	for _, is := range issuances {
		names = append(names, is.DNSNames...)
	}
	return s.Emit(ctx, out, host, names)
}
