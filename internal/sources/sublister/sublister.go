// Package sublister consulta la API de búsqueda de Sublist3r.
package sublister

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
	Name           = "sublister"
	defaultBaseURL = "https://api.sublist3r.com"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger), nil
		},
		registry.Meta("Sublist3r search API"),
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
	return s.URL("/search.php?domain=%s", url.QueryEscape(host))
}

func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	body, err := s.GetRawJSON(ctx, host, s.buildURL(host), nil)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(body) {
		return common.Classify(Name, host, errors.ErrInvalidResponse)
	}

	// Array de strings; null cuando no hay resultados.
	var names []string
	for _, v := range gjson.ParseBytes(body).Array() {
		if v.Type == gjson.String {
			names = append(names, v.Str)
		}
	}
	return s.Emit(ctx, out, host, names)
}
