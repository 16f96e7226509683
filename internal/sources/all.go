// Package sources conecta todos los proveedores a un registry.
package sources

import (
	"vita/internal/platform/logx"
	"vita/internal/platform/registry"
	"vita/internal/sources/alienvault"
	"vita/internal/sources/anubisdb"
	"vita/internal/sources/binaryedge"
	"vita/internal/sources/bufferover"
	"vita/internal/sources/c99"
	"vita/internal/sources/certspotter"
	"vita/internal/sources/chaos"
	"vita/internal/sources/crtsh"
	"vita/internal/sources/facebook"
	"vita/internal/sources/hackertarget"
	"vita/internal/sources/intelx"
	"vita/internal/sources/passivetotal"
	"vita/internal/sources/rapiddns"
	"vita/internal/sources/recondev"
	"vita/internal/sources/securitytrails"
	"vita/internal/sources/spyse"
	"vita/internal/sources/sublister"
	"vita/internal/sources/threatcrowd"
	"vita/internal/sources/threatminer"
	"vita/internal/sources/urlscan"
	"vita/internal/sources/virustotal"
	"vita/internal/sources/wayback"
)

var registrars = []func(*registry.SourceRegistry){
	// sin credenciales
	alienvault.Register,
	anubisdb.Register,
	bufferover.Register,
	certspotter.Register,
	crtsh.Register,
	hackertarget.Register,
	rapiddns.Register,
	recondev.Register,
	sublister.Register,
	threatcrowd.Register,
	threatminer.Register,
	urlscan.Register,
	virustotal.Register,
	wayback.Register,

	// con credenciales
	binaryedge.Register,
	c99.Register,
	chaos.Register,
	facebook.Register,
	intelx.Register,
	passivetotal.Register,
	securitytrails.Register,
	spyse.Register,
}

// RegisterAll añade a r todos los proveedores conocidos.
func RegisterAll(r *registry.SourceRegistry) {
	for _, register := range registrars {
		register(r)
	}
}

// NewCatalog retorna un registry con todos los proveedores conocidos.
func NewCatalog(logger logx.Logger) *registry.SourceRegistry {
	r := registry.NewSourceRegistry(logger)
	RegisterAll(r)
	return r
}
