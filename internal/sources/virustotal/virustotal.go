// Package virustotal lista los subdominios que conoce VirusTotal. Sin clave
// usa el endpoint público de la UI; con VIRUSTOTAL_KEY pasa a la API v3.
package virustotal

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
	Name           = "virustotal"
	defaultBaseURL = "https://www.virustotal.com"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger, deps.Credentials.Get(credentials.VirusTotalKey)), nil
		},
		registry.OptionalMeta("VirusTotal domain relationships", credentials.VirusTotalKey),
	)
}

type Source struct {
	common.BaseSource
	apiKey string
}

func New(client *httpclient.Client, logger logx.Logger, apiKey string) *Source {
	return &Source{
		BaseSource: common.NewBaseSource(client, logger, common.BaseConfig{
			Name:    Name,
			BaseURL: defaultBaseURL,
		}),
		apiKey: apiKey,
	}
}

type subdomains struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (s *Source) buildURL(host string) string {
	if s.apiKey != "" {
		return s.URL("/api/v3/domains/%s/subdomains?limit=40", url.PathEscape(host))
	}
	return s.URL("/ui/domains/%s/subdomains?limit=40", url.PathEscape(host))
}

func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	var headers map[string]string
	if s.apiKey != "" {
		headers = map[string]string{"x-apikey": s.apiKey}
	}

	var resp subdomains
	if err := s.GetJSON(ctx, host, s.buildURL(host), headers, &resp); err != nil {
		return err
	}

	names := make([]string, 0, len(resp.Data))
	for _, d := range resp.Data {
		names = append(names, d.ID)
	}
	return s.Emit(ctx, out, host, names)
}
