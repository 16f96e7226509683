// Package securitytrails consulta la API de subdominios de SecurityTrails.
// Requiere SECURITY_TRAILS_KEY.
package securitytrails

import (
	"context"
	"net/url"

	"vita/internal/core/ports"
	"vita/internal/platform/credentials"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
	"vita/internal/platform/registry"
	"vita/internal/sources/common"
)

const (
	Name           = "securitytrails"
	defaultBaseURL = "https://api.securitytrails.com"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger, deps.Credentials), nil
		},
		registry.Meta("SecurityTrails subdomain list", credentials.SecurityTrailsKey),
	)
}

type Source struct {
	common.BaseSource
	apiKey string
}

func New(client *httpclient.Client, logger logx.Logger, store *credentials.Store) *Source {
	s := &Source{
		BaseSource: common.NewBaseSource(client, logger, common.BaseConfig{
			Name:         Name,
			RequiresAuth: true,
			BaseURL:      defaultBaseURL,
		}),
	}
	s.apiKey = s.ResolveKeys(store, credentials.SecurityTrailsKey)[credentials.SecurityTrailsKey]
	return s
}

// La API devuelve solo las etiquetas, sin el dominio.
type result struct {
	Subdomains []string `json:"subdomains"`
}

func (s *Source) buildURL(host string) string {
	return s.URL("/v1/domain/%s/subdomains", url.PathEscape(host))
}

func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	if err := s.KeyErr(); err != nil {
		return err
	}

	var resp result
	if err := s.GetJSON(ctx, host, s.buildURL(host), map[string]string{"apikey": s.apiKey}, &resp); err != nil {
		return err
	}

	names := make([]string, 0, len(resp.Subdomains))
	for _, sub := range resp.Subdomains {
		names = append(names, common.JoinSub(sub, host))
	}
	return s.Emit(ctx, out, host, names)
}
