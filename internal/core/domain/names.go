// internal/core/domain/names.go
package domain

import (
	"net"
	"regexp"
	"strings"
)

// nameRegex valida la sintaxis de un hostname ASCII (o punycode). Las
// etiquetas intermedias admiten '_' porque aparecen en registros DNS reales.
var nameRegex = regexp.MustCompile(`^([a-zA-Z0-9_]([a-zA-Z0-9\-_]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)

// IsDomainName verifica que name sea un nombre de dominio sintácticamente
// válido. Las direcciones IP no cuentan como dominio.
func IsDomainName(name string) bool {
	if len(name) == 0 || len(name) > 253 {
		return false
	}
	if !nameRegex.MatchString(name) {
		return false
	}
	return net.ParseIP(name) == nil
}

// NormalizeName pasa a minúsculas, recorta espacios y quita el punto final.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(name, ".")
}

// IsSubdomain verifica si sub termina en "."+base y no es base. Solo
// ignora mayúsculas: un punto final en sub no se descarta.
func IsSubdomain(sub, base string) bool {
	sub = strings.ToLower(sub)
	base = strings.ToLower(base)

	if sub == base {
		return false
	}
	return strings.HasSuffix(sub, "."+base)
}
