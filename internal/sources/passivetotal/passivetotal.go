// Package passivetotal consulta la API de enrichment de RiskIQ PassiveTotal.
// Requiere PASSIVETOTAL_KEY (e-mail de la cuenta) y PASSIVETOTAL_SECRET.
package passivetotal

import (
	"context"
	"fmt"
	"net/http"

	"vita/internal/core/domain"
	"vita/internal/core/ports"
	"vita/internal/platform/credentials"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
	"vita/internal/platform/registry"
	"vita/internal/sources/common"
)

const (
	Name           = "passivetotal"
	defaultBaseURL = "https://api.passivetotal.org"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger, deps.Credentials), nil
		},
		registry.Meta("RiskIQ PassiveTotal subdomain enrichment",
			credentials.PassiveTotalKey, credentials.PassiveTotalSecret),
	)
}

type Source struct {
	common.BaseSource
	user   string
	secret string
}

func New(client *httpclient.Client, logger logx.Logger, store *credentials.Store) *Source {
	s := &Source{
		BaseSource: common.NewBaseSource(client, logger, common.BaseConfig{
			Name:         Name,
			RequiresAuth: true,
			BaseURL:      defaultBaseURL,
		}),
	}
	keys := s.ResolveKeys(store, credentials.PassiveTotalKey, credentials.PassiveTotalSecret)
	s.user = keys[credentials.PassiveTotalKey]
	s.secret = keys[credentials.PassiveTotalSecret]
	return s
}

type query struct {
	Query string `json:"query"`
}

type result struct {
	Success       bool     `json:"success"`
	PrimaryDomain string   `json:"primaryDomain"`
	Subdomains    []string `json:"subdomains"`
}

func (s *Source) buildURL() string {
	return s.URL("/v2/enrichment/subdomains")
}

// Run usa GET con cuerpo JSON, como exige la API.
func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	if err := s.KeyErr(); err != nil {
		return err
	}

	headers := map[string]string{"Authorization": httpclient.BasicAuth(s.user, s.secret)}
	var resp result
	if err := s.DoJSON(ctx, host, http.MethodGet, s.buildURL(), query{Query: host}, headers, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return domain.NewSourceError(Name, host, fmt.Errorf("query for %s not successful", host))
	}

	root := resp.PrimaryDomain
	if root == "" {
		root = host
	}
	names := make([]string, 0, len(resp.Subdomains))
	for _, sub := range resp.Subdomains {
		names = append(names, common.JoinSub(sub, root))
	}
	return s.Emit(ctx, out, host, names)
}
