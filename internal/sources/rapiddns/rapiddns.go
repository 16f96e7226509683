// Package rapiddns extrae el listado de subdominios de RapidDNS.
package rapiddns

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"vita/internal/core/ports"
	"vita/internal/platform/errors"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
	"vita/internal/platform/registry"
	"vita/internal/sources/common"
)

const (
	Name           = "rapiddns"
	defaultBaseURL = "https://rapiddns.io"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger), nil
		},
		registry.Meta("RapidDNS subdomain listing (HTML)"),
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
	return s.URL("/subdomain/%s?full=1", url.PathEscape(host))
}

// Run descarga la tabla HTML y toma el texto de los enlaces que abren en
// pestaña nueva: cada uno es un nombre.
func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	body, err := s.GetBody(ctx, host, s.buildURL(host), nil)
	if err != nil {
		return err
	}

	names, err := parse(body)
	if err != nil {
		return common.Classify(Name, host, err)
	}
	return s.Emit(ctx, out, host, names)
}

func parse(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidResponse, "parse html: %v", err)
	}

	var names []string
	doc.Find(`a[target="_blank"]`).Each(func(_ int, sel *goquery.Selection) {
		if name := strings.TrimSpace(sel.Text()); name != "" {
			names = append(names, name)
		}
	})
	return names, nil
}
