// internal/core/usecases/postprocessor.go
package usecases

import (
	"iter"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"

	"vita/internal/core/domain"
	"vita/internal/core/ports"
)

// sanitizer elimina los caracteres de ruido que devuelven los proveedores.
var sanitizer = strings.NewReplacer(`"`, "", `\`, "", "*", "")

// Sanitize limpia un nombre candidato: quita comillas, barras invertidas y
// comodines, un único punto inicial y pasa a minúsculas.
func Sanitize(name string) string {
	s := sanitizer.Replace(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, ".")
	return strings.ToLower(s)
}

// PostProcessor decide qué candidatos son relevantes para los hosts de entrada.
// No mantiene estado entre llamadas: el resultado depende solo de
// (candidatos, raíces, modo).
type PostProcessor struct {
	mode  domain.FilterMode
	roots map[string]struct{}
}

// NewPostProcessor calcula el conjunto de raíces según el modo.
// En RootOnly los hosts que no tienen un dominio registrable se descartan.
func NewPostProcessor(mode domain.FilterMode, hosts []string) *PostProcessor {
	if !mode.IsValid() {
		mode = domain.FilterRootOnly
	}

	roots := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		h = normalizeRoot(h)
		if h == "" {
			continue
		}
		if mode == domain.FilterRootOnly {
			root, ok := registrable(h)
			if !ok {
				continue
			}
			h = root
		}
		roots[h] = struct{}{}
	}

	return &PostProcessor{mode: mode, roots: roots}
}

// Mode retorna el modo de filtrado.
func (p *PostProcessor) Mode() domain.FilterMode {
	return p.mode
}

// Roots retorna las raíces efectivas, sin orden.
func (p *PostProcessor) Roots() []string {
	out := make([]string, 0, len(p.roots))
	for r := range p.roots {
		out = append(out, r)
	}
	return out
}

// IsRelevant evalúa un candidato ya sanitizado.
func (p *PostProcessor) IsRelevant(candidate string) bool {
	if candidate == "" {
		return false
	}

	switch p.mode {
	case domain.FilterSubOnly:
		for h := range p.roots {
			if domain.IsSubdomain(candidate, h) {
				return true
			}
		}
		return false
	default:
		root, ok := registrable(candidate)
		if !ok {
			return false
		}
		_, found := p.roots[root]
		return found
	}
}

// Clean sanitiza, filtra y deduplica un lote completo y escribe cada nombre
// aceptado en sink. Retorna cuántos nombres escribió.
func (p *PostProcessor) Clean(candidates []string, sink ports.NameSink) (int, error) {
	written := 0
	for name := range p.Filter(Unique(SplitFields(Values(candidates)))) {
		if err := sink.Write(name); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// Filter es la superficie perezosa: produce los nombres sanitizados y
// relevantes de seq, en el orden de llegada. No deduplica.
func (p *PostProcessor) Filter(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for raw := range seq {
			name := Sanitize(raw)
			if !p.IsRelevant(name) {
				continue
			}
			if !yield(name) {
				return
			}
		}
	}
}

// Unique descarta los valores ya vistos. La comparación se hace tras
// Sanitize, así "A.example.com" y "a.example.com" cuentan como uno.
func Unique(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for v := range seq {
			key := Sanitize(v)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if !yield(v) {
				return
			}
		}
	}
}

// SplitFields separa valores que el proveedor unió con espacios o saltos
// de línea (crt.sh devuelve los SAN de un certificado en un solo campo).
func SplitFields(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for v := range seq {
			for _, f := range strings.Fields(v) {
				if !yield(f) {
					return
				}
			}
		}
	}
}

// Values adapta un slice a iter.Seq.
func Values(items []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}

// registrable retorna el eTLD+1 de name. Falla si el nombre no es
// sintácticamente un dominio o si es en sí mismo un sufijo público.
func registrable(name string) (string, bool) {
	ascii := name
	if !isASCII(name) {
		// Lookup aplica STD3 y rechazaría etiquetas como _dmarc, por eso
		// solo se usa para nombres internacionalizados.
		var err error
		if ascii, err = idna.Lookup.ToASCII(name); err != nil || ascii == "" {
			return "", false
		}
	}
	if !domain.IsDomainName(ascii) {
		return "", false
	}
	root, err := publicsuffix.EffectiveTLDPlusOne(ascii)
	if err != nil {
		return "", false
	}
	return root, true
}

func normalizeRoot(host string) string {
	h := domain.NormalizeName(host)
	if !isASCII(h) {
		if ascii, err := idna.Lookup.ToASCII(h); err == nil {
			h = ascii
		}
	}
	return h
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
