// Package alienvault consulta el índice de DNS pasivo de AlienVault OTX.
package alienvault

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
	Name           = "alienvault"
	defaultBaseURL = "https://otx.alienvault.com"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger), nil
		},
		registry.Meta("AlienVault OTX passive DNS records"),
	)
}

// Source consulta el endpoint passive_dns de OTX.
type Source struct {
	common.BaseSource
}

// New crea la fuente.
func New(client *httpclient.Client, logger logx.Logger) *Source {
	return &Source{
		BaseSource: common.NewBaseSource(client, logger, common.BaseConfig{
			Name:    Name,
			BaseURL: defaultBaseURL,
		}),
	}
}

type passiveDNS struct {
	PassiveDNS []struct {
		Hostname string `json:"hostname"`
	} `json:"passive_dns"`
	Count int `json:"count"`
}

func (s *Source) buildURL(host string) string {
	return s.URL("/api/v1/indicators/domain/%s/passive_dns", url.PathEscape(host))
}

// Run ejecuta la consulta para host.
func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	var resp passiveDNS
	if err := s.GetJSON(ctx, host, s.buildURL(host), nil, &resp); err != nil {
		return err
	}
	if resp.Count == 0 {
		return s.NoResults(host)
	}

	names := make([]string, 0, len(resp.PassiveDNS))
	for _, r := range resp.PassiveDNS {
		names = append(names, r.Hostname)
	}
	return s.Emit(ctx, out, host, names)
}
