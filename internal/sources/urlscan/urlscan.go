// Package urlscan consulta la API de búsqueda de urlscan.io. La clave es
// opcional y solo amplía la cuota del proveedor.
package urlscan

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
	Name           = "urlscan"
	defaultBaseURL = "https://urlscan.io"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger, deps.Credentials.Get(credentials.URLScanKey)), nil
		},
		registry.OptionalMeta("urlscan.io domain search", credentials.URLScanKey),
	)
}

type Source struct {
	common.BaseSource
	apiKey string
}

// New crea la fuente. apiKey puede estar vacío.
func New(client *httpclient.Client, logger logx.Logger, apiKey string) *Source {
	return &Source{
		BaseSource: common.NewBaseSource(client, logger, common.BaseConfig{
			Name:    Name,
			BaseURL: defaultBaseURL,
		}),
		apiKey: apiKey,
	}
}

type searchResult struct {
	Results []struct {
		Page struct {
			Domain string `json:"domain"`
		} `json:"page"`
	} `json:"results"`
}

func (s *Source) buildURL(host string) string {
	return s.URL("/api/v1/search/?q=%s", url.QueryEscape("domain:"+host))
}

func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	var headers map[string]string
	if s.apiKey != "" {
		headers = map[string]string{"API-Key": s.apiKey}
	}

	var resp searchResult
	if err := s.GetJSON(ctx, host, s.buildURL(host), headers, &resp); err != nil {
		return err
	}

	names := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		names = append(names, r.Page.Domain)
	}
	return s.Emit(ctx, out, host, names)
}
