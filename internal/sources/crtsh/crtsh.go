// internal/sources/crtsh/crtsh.go
package crtsh

import (
	"context"
	"net/url"

	"vita/internal/core/ports"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
	"vita/internal/platform/registry"
	"vita/internal/sources/common"
)

const (
	Name           = "crtsh"
	defaultBaseURL = "https://crt.sh"
)

// Register añade crt.sh al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger), nil
		},
		registry.Meta("Certificate Transparency log search via crt.sh"),
	)
}

// CRT implementa una fuente que consulta la base de datos crt.sh
// para descubrir los nombres presentes en certificados SSL/TLS.
type CRT struct {
	common.BaseSource
}

// New crea una nueva instancia de la fuente crt.sh.
func New(client *httpclient.Client, logger logx.Logger) *CRT {
	return &CRT{
		BaseSource: common.NewBaseSource(client, logger, common.BaseConfig{
			Name:    Name,
			BaseURL: defaultBaseURL,
		}),
	}
}

func (c *CRT) buildURL(host string) string {
	// %25 es el comodín '%' de la búsqueda de crt.sh, ya escapado
	return c.URL("/?q=%%25.%s&output=json", url.QueryEscape(host))
}

// Run ejecuta la fuente contra host.
func (c *CRT) Run(ctx context.Context, host string, out chan<- []string) error {
	c.Logger.Debug("starting crtsh query", "host", host)

	// crt.sh devuelve HTML cuando está saturado: eso acaba como SourceError
	var records []certRecord
	if err := c.GetJSON(ctx, host, c.buildURL(host), nil, &records); err != nil {
		return err
	}

	c.Logger.Debug("parsed crtsh records", "count", len(records))
	return c.Emit(ctx, out, host, nameValues(ctx, records))
}

// nameValues extrae name_value de cada registro. Un mismo valor puede
// contener varios nombres separados por \n; se envían tal cual y el
// post-procesador los separa.
func nameValues(ctx context.Context, records []certRecord) []string {
	names := make([]string, 0, len(records))
	for _, record := range records {
		if ctx.Err() != nil {
			break
		}
		names = append(names, record.NameValue)
	}
	return names
}

// certRecord representa un registro de certificado de crt.sh.
type certRecord struct {
	IssuerName   string `json:"issuer_name"`
	CommonName   string `json:"common_name"`
	NameValue    string `json:"name_value"`
	NotBefore    string `json:"not_before"`
	NotAfter     string `json:"not_after"`
	SerialNumber string `json:"serial_number"`
}
