// internal/core/domain/names_test.go
package domain

import (
	"testing"

	"vita/internal/testutil"
)

func TestIsDomainName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "example.com", true},
		{"service label", "_dmarc.example.com", true},
		{"single label", "localhost", true},
		{"email SAN", "user@mail.example.com", false},
		{"html residue", "<br>www.example.com", false},
		{"colon", "a:b.example.com", false},
		{"comma", "a,b.example.com", false},
		{"bang", "a!b.example.com", false},
		{"empty label", "a..example.com", false},
		{"leading hyphen", "-a.example.com", false},
		{"ipv4", "192.168.1.1", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsDomainName(tt.input), tt.want, "domain name")
		})
	}
}

func TestIsSubdomain(t *testing.T) {
	tests := []struct {
		name string
		sub  string
		base string
		want bool
	}{
		{"direct subdomain", "api.example.com", "example.com", true},
		{"nested subdomain", "v1.api.example.com", "example.com", true},
		{"same domain", "example.com", "example.com", false},
		{"suffix without dot", "notexample.com", "example.com", false},
		{"case insensitive", "API.Example.COM", "example.com", true},
		{"trailing dot is not a suffix match", "api.example.com.", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsSubdomain(tt.sub, tt.base), tt.want, "subdomain check")
		})
	}
}

func TestNormalizeName(t *testing.T) {
	testutil.AssertEqual(t, NormalizeName("  WWW.Example.COM. "), "www.example.com", "normalized")
}
