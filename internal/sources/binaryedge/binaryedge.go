// Package binaryedge consulta el índice de subdominios de BinaryEdge.
// Requiere BINARYEDGE_TOKEN. Los resultados van paginados y las páginas
// posteriores a la primera se piden en paralelo.
package binaryedge

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"vita/internal/core/ports"
	"vita/internal/platform/credentials"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
	"vita/internal/platform/registry"
	"vita/internal/sources/common"
)

const (
	Name           = "binaryedge"
	defaultBaseURL = "https://api.binaryedge.io"

	// maxPages acota cuántas páginas se piden por host.
	maxPages = 50
	// pageWorkers limita las páginas en vuelo por unidad.
	pageWorkers = 4
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger, deps.Credentials), nil
		},
		registry.Meta("BinaryEdge subdomain index", credentials.BinaryEdgeToken),
	)
}

type Source struct {
	common.BaseSource
	token string
}

func New(client *httpclient.Client, logger logx.Logger, store *credentials.Store) *Source {
	s := &Source{
		BaseSource: common.NewBaseSource(client, logger, common.BaseConfig{
			Name:         Name,
			RequiresAuth: true,
			BaseURL:      defaultBaseURL,
		}),
	}
	s.token = s.ResolveKeys(store, credentials.BinaryEdgeToken)[credentials.BinaryEdgeToken]
	return s
}

type page struct {
	Page     int      `json:"page"`
	PageSize int      `json:"pagesize"`
	Total    int      `json:"total"`
	Events   []string `json:"events"`
}

// lastPage calcula la última página a pedir a partir de la primera respuesta.
func (p page) lastPage() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return p.Page
	}
	last := (p.Total + p.PageSize - 1) / p.PageSize
	return min(last, maxPages)
}

func (s *Source) buildURL(host string, n int) string {
	u := s.URL("/v2/query/domains/subdomain/%s", url.PathEscape(host))
	if n > 0 {
		u += "?page=" + strconv.Itoa(n)
	}
	return u
}

func (s *Source) fetch(ctx context.Context, host string, n int) (page, error) {
	var p page
	err := s.GetJSON(ctx, host, s.buildURL(host, n), map[string]string{"X-Key": s.token}, &p)
	return p, err
}

func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	if err := s.KeyErr(); err != nil {
		return err
	}

	first, err := s.fetch(ctx, host, 0)
	if err != nil {
		return err
	}

	var (
		mu    sync.Mutex
		names = append([]string(nil), first.Events...)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pageWorkers)
	for n := max(first.Page, 1) + 1; n <= first.lastPage(); n++ {
		g.Go(func() error {
			p, err := s.fetch(gctx, host, n)
			if err != nil {
				return err
			}
			mu.Lock()
			names = append(names, p.Events...)
			mu.Unlock()
			return nil
		})
	}

	// Una página fallida no descarta las ya obtenidas.
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.Logger.Debug("pagination stopped early", "host", host, "error", err.Error(), "names", len(names))
	}
	return s.Emit(ctx, out, host, names)
}
