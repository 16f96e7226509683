// Package spyse consulta el endpoint v3 de subdominios de Spyse. Requiere SPYSE_TOKEN.
package spyse

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
	Name           = "spyse"
	defaultBaseURL = "https://api.spyse.com"

	pageLimit = 100
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger, deps.Credentials), nil
		},
		registry.Meta("Spyse domain subdomains", credentials.SpyseToken),
	)
}

type Source struct {
	common.BaseSource
	token string
}

func New(client *httpclient.Client, logger logx.Logger, store *credentials.Store) *Source {
	s := &Source{
		BaseSource: common.NewBaseSource(client, logger, common.BaseConfig{
			Name:         Name,
			RequiresAuth: true,
			BaseURL:      defaultBaseURL,
		}),
	}
	s.token = s.ResolveKeys(store, credentials.SpyseToken)[credentials.SpyseToken]
	return s
}

type result struct {
	Data struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	} `json:"data"`
}

func (s *Source) buildURL(host string) string {
	return s.URL("/v3/data/domain/subdomain?limit=%d&domain=%s", pageLimit, url.QueryEscape(host))
}

func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	if err := s.KeyErr(); err != nil {
		return err
	}

	var resp result
	headers := map[string]string{"Authorization": "Bearer " + s.token}
	if err := s.GetJSON(ctx, host, s.buildURL(host), headers, &resp); err != nil {
		return err
	}

	names := make([]string, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		names = append(names, item.Name)
	}
	return s.Emit(ctx, out, host, names)
}
