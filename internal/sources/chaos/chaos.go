// Package chaos consulta el dataset Chaos de ProjectDiscovery. Requiere CHAOS_KEY.
package chaos

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
	Name           = "chaos"
	defaultBaseURL = "https://dns.projectdiscovery.io"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger, deps.Credentials), nil
		},
		registry.Meta("ProjectDiscovery Chaos dataset", credentials.ChaosKey),
	)
}

type Source struct {
	common.BaseSource
	apiKey string
}

// New crea la fuente y resuelve la clave una sola vez. Si falta, Run
// devuelve el KeyError sin hacer ninguna petición.
func New(client *httpclient.Client, logger logx.Logger, store *credentials.Store) *Source {
	s := &Source{
		BaseSource: common.NewBaseSource(client, logger, common.BaseConfig{
			Name:         Name,
			RequiresAuth: true,
			BaseURL:      defaultBaseURL,
		}),
	}
	s.apiKey = s.ResolveKeys(store, credentials.ChaosKey)[credentials.ChaosKey]
	return s
}

type result struct {
	Domain     string   `json:"domain"`
	Subdomains []string `json:"subdomains"`
}

func (s *Source) buildURL(host string) string {
	return s.URL("/dns/%s/subdomains", url.PathEscape(host))
}

func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	if err := s.KeyErr(); err != nil {
		return err
	}

	var resp result
	headers := map[string]string{"Authorization": s.apiKey}
	if err := s.GetJSON(ctx, host, s.buildURL(host), headers, &resp); err != nil {
		return err
	}

	root := resp.Domain
	if root == "" {
		root = host
	}
	names := make([]string, 0, len(resp.Subdomains))
	for _, sub := range resp.Subdomains {
		names = append(names, common.JoinSub(sub, root))
	}
	return s.Emit(ctx, out, host, names)
}
