// Package wayback extrae hostnames del índice CDX de la Wayback Machine.
package wayback

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
	Name           = "wayback"
	defaultBaseURL = "https://web.archive.org"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger), nil
		},
		registry.Meta("Wayback Machine CDX index"),
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
	return s.URL("/cdx/search/cdx?url=*.%s/*&output=json&fl=original&collapse=urlkey&limit=100000", url.QueryEscape(host))
}

// Run consulta el índice CDX. La respuesta es un array de filas; la primera
// es la cabecera ["original"] y el resto contiene una URL archivada.
func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	body, err := s.GetRawJSON(ctx, host, s.buildURL(host), nil)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(body) {
		return common.Classify(Name, host, errors.ErrInvalidResponse)
	}

	var names []string
	for _, original := range gjson.GetBytes(body, "#.0").Array() {
		if h := hostOf(original.String()); h != "" {
			names = append(names, h)
		}
	}
	return s.Emit(ctx, out, host, names)
}

// hostOf retorna el host de una URL archivada; "" si no es una URL absoluta.
func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return ""
	}
	return u.Hostname()
}
