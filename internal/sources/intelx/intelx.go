// Package intelx consulta el phonebook de Intelligence X. Necesita INTELX_KEY
// e INTELX_URL, el host de API asignado a la cuenta (p. ej. 2.intelx.io).
package intelx

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"vita/internal/core/ports"
	"vita/internal/platform/credentials"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
	"vita/internal/platform/registry"
	"vita/internal/sources/common"
)

const (
	Name = "intelx"

	maxResults = 100000
	// segundos que el servidor espera antes de cerrar la búsqueda
	searchTimeout = 20
	// target 1: dominios
	targetDomains = 1
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger, deps.Credentials), nil
		},
		registry.Meta("Intelligence X phonebook", credentials.IntelxKey, credentials.IntelxURL),
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
		}),
	}
	keys := s.ResolveKeys(store, credentials.IntelxKey, credentials.IntelxURL)
	s.apiKey = keys[credentials.IntelxKey]
	s.BaseURL = baseURL(keys[credentials.IntelxURL])
	return s
}

func baseURL(host string) string {
	host = strings.TrimSuffix(strings.TrimSpace(host), "/")
	if host == "" || strings.Contains(host, "://") {
		return host
	}
	return "https://" + host
}

type searchRequest struct {
	Term       string   `json:"term"`
	MaxResults int      `json:"maxresults"`
	Media      int      `json:"media"`
	Target     int      `json:"target"`
	Terminate  []string `json:"terminate"`
	Timeout    int      `json:"timeout"`
}

type searchResponse struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
}

type resultResponse struct {
	Selectors []struct {
		Value string `json:"selectorvalue"`
	} `json:"selectors"`
	Status int `json:"status"`
}

func (s *Source) searchURL() string {
	return s.URL("/phonebook/search?k=%s", url.QueryEscape(s.apiKey))
}

func (s *Source) resultURL(id string) string {
	return s.URL("/phonebook/search/result?k=%s&id=%s&limit=%d",
		url.QueryEscape(s.apiKey), url.QueryEscape(id), maxResults)
}

// Run lanza la búsqueda y recoge los selectores en una segunda petición.
func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	if err := s.KeyErr(); err != nil {
		return err
	}

	req := searchRequest{
		Term:       host,
		MaxResults: maxResults,
		Target:     targetDomains,
		Terminate:  []string{},
		Timeout:    searchTimeout,
	}
	var search searchResponse
	if err := s.DoJSON(ctx, host, http.MethodPost, s.searchURL(), req, nil, &search); err != nil {
		return err
	}
	if search.ID == "" {
		return s.NoResults(host)
	}

	var res resultResponse
	if err := s.GetJSON(ctx, host, s.resultURL(search.ID), nil, &res); err != nil {
		return err
	}

	names := make([]string, 0, len(res.Selectors))
	for _, sel := range res.Selectors {
		names = append(names, sel.Value)
	}
	return s.Emit(ctx, out, host, names)
}
