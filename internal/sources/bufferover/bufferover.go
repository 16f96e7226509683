// Package bufferover consulta el dataset de DNS directo e inverso de BufferOver.
package bufferover

import (
	"context"
	"net/url"
	"strings"

	"vita/internal/core/ports"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
	"vita/internal/platform/registry"
	"vita/internal/sources/common"
)

const (
	Name           = "bufferover"
	defaultBaseURL = "http://dns.bufferover.run"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger), nil
		},
		registry.Meta("BufferOver DNS dataset"),
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

// Cada entrada tiene la forma "ip,nombre".
type dnsResult struct {
	FDNSA []string `json:"FDNS_A"`
	RDNS  []string `json:"RDNS"`
}

func (s *Source) buildURL(host string) string {
	return s.URL("/dns?q=%s", url.QueryEscape(host))
}

func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	var resp dnsResult
	if err := s.GetJSON(ctx, host, s.buildURL(host), nil, &resp); err != nil {
		return err
	}

	names := make([]string, 0, len(resp.FDNSA)+len(resp.RDNS))
	for _, entry := range append(resp.FDNSA, resp.RDNS...) {
		if _, name, ok := strings.Cut(entry, ","); ok {
			names = append(names, name)
		}
	}
	return s.Emit(ctx, out, host, names)
}
