// Package c99 consulta el buscador de subdominios de C99.nl. Requiere C99_KEY.
package c99

import (
	"context"
	"net/url"
	"strings"

	"vita/internal/core/domain"
	"vita/internal/core/ports"
	"vita/internal/platform/credentials"
	"vita/internal/platform/errors"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
	"vita/internal/platform/registry"
	"vita/internal/sources/common"
)

const (
	Name           = "c99"
	defaultBaseURL = "https://api.c99.nl"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger, deps.Credentials), nil
		},
		registry.Meta("C99.nl subdomain finder", credentials.C99Key),
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
	s.apiKey = s.ResolveKeys(store, credentials.C99Key)[credentials.C99Key]
	return s
}

// La API responde 200 incluso con una clave inválida; el fallo viene en
// success/error.
type result struct {
	Success    *bool  `json:"success"`
	Error      string `json:"error"`
	Subdomains []struct {
		Subdomain string `json:"subdomain"`
	} `json:"subdomains"`
}

func (s *Source) buildURL(host string) string {
	return s.URL("/subdomainfinder?key=%s&domain=%s&json",
		url.QueryEscape(s.apiKey), url.QueryEscape(host))
}

func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	if err := s.KeyErr(); err != nil {
		return err
	}

	var resp result
	if err := s.GetJSON(ctx, host, s.buildURL(host), nil, &resp); err != nil {
		return err
	}
	if resp.Success != nil && !*resp.Success && strings.Contains(strings.ToLower(resp.Error), "key") {
		return domain.NewAuthError(Name, errors.Wrap(errors.ErrUnauthorized, resp.Error))
	}

	names := make([]string, 0, len(resp.Subdomains))
	for _, sd := range resp.Subdomains {
		names = append(names, sd.Subdomain)
	}
	return s.Emit(ctx, out, host, names)
}
