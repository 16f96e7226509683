// Package anubisdb consulta el índice de subdominios de AnubisDB en jldc.me.
package anubisdb

import (
	"context"
	"net/url"

	"github.com/tidwall/gjson"

	"vita/internal/core/ports"
	"vita/internal/platform/errors"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
	"vita/internal/platform/registry"
	"vita/internal/sources/common"
)

const (
	Name           = "anubisdb"
	defaultBaseURL = "https://jldc.me"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger), nil
		},
		registry.Meta("AnubisDB subdomain index"),
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

func (s *Source) buildURL(host string) string {
	return s.URL("/anubis/subdomains/%s", url.PathEscape(host))
}

// Run ejecuta la consulta. La respuesta es un array JSON de strings o null.
func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	body, err := s.GetRawJSON(ctx, host, s.buildURL(host), nil)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(body) {
		return common.Classify(Name, host, errors.ErrInvalidResponse)
	}

	res := gjson.ParseBytes(body)
	if !res.IsArray() {
		return s.NoResults(host)
	}

	var names []string
	res.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String {
			names = append(names, v.String())
		}
		return true
	})
	return s.Emit(ctx, out, host, names)
}
