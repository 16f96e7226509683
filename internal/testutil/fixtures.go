// internal/testutil/fixtures.go
package testutil

// Fixture data para tests (valores primitivos solamente, sin dependencias de domain)

// FixtureDomains contiene dominios de prueba válidos.
var FixtureDomains = []string{
	"example.com",
	"test.example.com",
	"subdomain.example.com",
	"another.test.example.com",
}

// FixtureInvalidDomains contiene dominios inválidos.
var FixtureInvalidDomains = []string{
	"",
	"not a domain",
	"192.168.1.1",
	"2001:db8::1",
	"-invalid.com",
	"invalid-.com",
	"example..com",
}

// FixtureHackeroneCandidates es la salida cruda de varias fuentes para hackerone.com.
var FixtureHackeroneCandidates = [][]string{
	{"api.hackerone.com", "docs.hackerone.com"},
	{"hackerone.com", "evil.com"},
}

// FixtureHackeroneExpected es el conjunto relevante esperado para hackerone.com.
var FixtureHackeroneExpected = []string{
	"api.hackerone.com",
	"docs.hackerone.com",
	"hackerone.com",
}

// FixtureDirtyNames contiene nombres con ruido típico de los proveedores.
var FixtureDirtyNames = map[string]string{
	"*.evil.com":          "evil.com",
	"\"Api.Example.com\"": "api.example.com",
	".www.example.com":    "www.example.com",
	"\\mail.example.com":  "mail.example.com",
	"  DEV.example.com  ": "dev.example.com",
}
