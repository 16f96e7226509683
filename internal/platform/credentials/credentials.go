// Package credentials resolves provider API keys once per run, from an
// optional YAML file overlaid by environment variables.
package credentials

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"vita/internal/core/domain"
)

// Variable names understood by the providers.
const (
	ChaosKey           = "CHAOS_KEY"
	SecurityTrailsKey  = "SECURITY_TRAILS_KEY"
	BinaryEdgeToken    = "BINARYEDGE_TOKEN"
	PassiveTotalKey    = "PASSIVETOTAL_KEY"
	PassiveTotalSecret = "PASSIVETOTAL_SECRET"
	FacebookAppID      = "FB_APP_ID"
	FacebookAppSecret  = "FB_APP_SECRET"
	SpyseToken         = "SPYSE_TOKEN"
	C99Key             = "C99_KEY"
	IntelxKey          = "INTELX_KEY"
	IntelxURL          = "INTELX_URL"
	URLScanKey         = "URLSCAN_KEY"
	VirusTotalKey      = "VIRUSTOTAL_KEY"
)

// Keys is the on-disk and environment shape of the credential set.
type Keys struct {
	Chaos              string `yaml:"chaos_key" env:"CHAOS_KEY"`
	SecurityTrails     string `yaml:"security_trails_key" env:"SECURITY_TRAILS_KEY"`
	BinaryEdge         string `yaml:"binaryedge_token" env:"BINARYEDGE_TOKEN"`
	PassiveTotalKey    string `yaml:"passivetotal_key" env:"PASSIVETOTAL_KEY"`
	PassiveTotalSecret string `yaml:"passivetotal_secret" env:"PASSIVETOTAL_SECRET"`
	FacebookAppID      string `yaml:"fb_app_id" env:"FB_APP_ID"`
	FacebookAppSecret  string `yaml:"fb_app_secret" env:"FB_APP_SECRET"`
	Spyse              string `yaml:"spyse_token" env:"SPYSE_TOKEN"`
	C99                string `yaml:"c99_key" env:"C99_KEY"`
	IntelxKey          string `yaml:"intelx_key" env:"INTELX_KEY"`
	IntelxURL          string `yaml:"intelx_url" env:"INTELX_URL"`
	URLScan            string `yaml:"urlscan_key" env:"URLSCAN_KEY"`
	VirusTotal         string `yaml:"virustotal_key" env:"VIRUSTOTAL_KEY"`
}

func (k Keys) vars() map[string]string {
	return map[string]string{
		ChaosKey:           k.Chaos,
		SecurityTrailsKey:  k.SecurityTrails,
		BinaryEdgeToken:    k.BinaryEdge,
		PassiveTotalKey:    k.PassiveTotalKey,
		PassiveTotalSecret: k.PassiveTotalSecret,
		FacebookAppID:      k.FacebookAppID,
		FacebookAppSecret:  k.FacebookAppSecret,
		SpyseToken:         k.Spyse,
		C99Key:             k.C99,
		IntelxKey:          k.IntelxKey,
		IntelxURL:          k.IntelxURL,
		URLScanKey:         k.URLScan,
		VirusTotalKey:      k.VirusTotal,
	}
}

// Store is an immutable snapshot of the resolved credentials.
type Store struct {
	values map[string]string
}

// LoadFrom reads path (if non-empty) and overlays environ; nil means the
// process environment.
func LoadFrom(path string, environ map[string]string) (*Store, error) {
	var keys Keys

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		if err := yaml.Unmarshal(data, &keys); err != nil {
			return nil, fmt.Errorf("parse credentials file %s: %w", path, err)
		}
	}

	opts := env.Options{Environment: environ}
	if err := env.ParseWithOptions(&keys, opts); err != nil {
		return nil, fmt.Errorf("parse credentials env: %w", err)
	}

	return FromMap(keys.vars()), nil
}

// FromMap builds a store from variable name to value. Empty values are dropped.
func FromMap(m map[string]string) *Store {
	values := make(map[string]string, len(m))
	for k, v := range m {
		if v = strings.TrimSpace(v); v != "" {
			values[k] = v
		}
	}
	return &Store{values: values}
}

// Empty returns a store without credentials.
func Empty() *Store {
	return &Store{values: map[string]string{}}
}

// Get returns the value of a variable, or "".
func (s *Store) Get(name string) string {
	if s == nil {
		return ""
	}
	return s.values[name]
}

// Lookup returns every requested variable or a *domain.KeyError naming all
// the missing ones.
func (s *Store) Lookup(source string, vars ...string) (map[string]string, error) {
	out := make(map[string]string, len(vars))
	var missing []string
	for _, v := range vars {
		val := s.Get(v)
		if val == "" {
			missing = append(missing, v)
			continue
		}
		out[v] = val
	}
	if len(missing) > 0 {
		return nil, domain.NewKeyError(source, missing...)
	}
	return out, nil
}

// Available lists the configured variable names, sorted.
func (s *Store) Available() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.values))
	for k := range s.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
