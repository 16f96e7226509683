// Package threatminer consulta la API de dominios de ThreatMiner (rt=5, subdominios).
package threatminer

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
	Name           = "threatminer"
	defaultBaseURL = "https://api.threatminer.org"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger), nil
		},
		registry.Meta("ThreatMiner subdomain report"),
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

type response struct {
	StatusCode string   `json:"status_code"`
	Results    []string `json:"results"`
}

func (s *Source) buildURL(host string) string {
	return s.URL("/v2/domain.php?q=%s&api=True&rt=5", url.QueryEscape(host))
}

func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	var resp response
	if err := s.GetJSON(ctx, host, s.buildURL(host), nil, &resp); err != nil {
		return err
	}
	return s.Emit(ctx, out, host, resp.Results)
}
