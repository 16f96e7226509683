// internal/platform/validator/validator.go
package validator

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"

	"vita/internal/core/domain"
)

// IsDomain verifica si un string es un dominio válido (ASCII o punycode).
func IsDomain(name string) bool {
	return domain.IsDomainName(name)
}

// NormalizeDomain normaliza un dominio a su forma canónica:
// minúsculas, sin espacios y sin punto final.
func NormalizeDomain(name string) string {
	return domain.NormalizeName(name)
}

// NormalizeHost convierte la entrada del usuario en un host consultable.
// Acepta URLs ("https://example.com/path"), host:puerto y nombres IDN.
func NormalizeHost(raw string) (string, error) {
	host := strings.TrimSpace(raw)
	if strings.Contains(host, "://") {
		u, err := url.Parse(host)
		if err != nil {
			return "", fmt.Errorf("%w: %q", domain.ErrInvalidDomain, raw)
		}
		host = u.Hostname()
	} else if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	host = NormalizeDomain(host)
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDomain, raw)
	}
	if !IsDomain(ascii) || !strings.Contains(ascii, ".") {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDomain, raw)
	}
	return ascii, nil
}

// ParseHosts normaliza una lista de entradas, elimina duplicados conservando
// el orden y devuelve por separado las entradas inválidas.
func ParseHosts(inputs []string) (hosts []string, invalid []string) {
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in) == "" {
			continue
		}
		h, err := NormalizeHost(in)
		if err != nil {
			invalid = append(invalid, in)
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		hosts = append(hosts, h)
	}
	return hosts, invalid
}
