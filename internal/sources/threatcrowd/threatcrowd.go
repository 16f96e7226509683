// Package threatcrowd consulta la API de informes de dominio de ThreatCrowd.
package threatcrowd

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
	Name           = "threatcrowd"
	defaultBaseURL = "https://www.threatcrowd.org"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger), nil
		},
		registry.Meta("ThreatCrowd domain report"),
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

type report struct {
	ResponseCode string   `json:"response_code"`
	Subdomains   []string `json:"subdomains"`
}

func (s *Source) buildURL(host string) string {
	return s.URL("/searchApi/v2/domain/report/?domain=%s", url.QueryEscape(host))
}

func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	var resp report
	if err := s.GetJSON(ctx, host, s.buildURL(host), nil, &resp); err != nil {
		return err
	}
	return s.Emit(ctx, out, host, resp.Subdomains)
}
