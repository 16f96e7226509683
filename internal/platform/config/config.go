// internal/platform/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"

	"vita/internal/core/domain"
	"vita/internal/platform/logx"
)

// EnvPrefix antecede a todas las variables de entorno de configuración.
const EnvPrefix = "VITA_"

type Config struct {
	Core        Core
	Source      Source
	Input       Input
	Output      Output
	Network     Network
	Credentials Credentials
	Log         Log

	// Acciones que terminan el proceso sin ejecutar el pipeline.
	PrintHelp    bool `json:"-"`
	PrintVersion bool `json:"-"`
	ListSources  bool `json:"-"`
}

type Core struct {
	Concurrency int    `env:"CONCURRENCY"`
	TimeoutS    int    `env:"TIMEOUT"` // segundos por petición HTTP
	Filter      string `env:"FILTER"`  // "root" o "sub"
}

type Source struct {
	All     bool     `env:"ALL"`
	Exclude []string `env:"EXCLUDE" envSeparator:","`
}

type Input struct {
	Domain string `env:"DOMAIN"`
	File   string `env:"FILE"`
	// Args son los argumentos posicionales; solo llegan por línea de comandos.
	Args []string
}

type Output struct {
	File   string `env:"OUTPUT"`
	JSON   bool   `env:"JSON"`
	Silent bool   `env:"SILENT"`
}

type Network struct {
	ProxyURL  string  `env:"PROXY"`
	UserAgent string  `env:"USER_AGENT"`
	RateLimit float64 `env:"RATE_LIMIT"` // peticiones/segundo, 0 = sin límite
}

type Credentials struct {
	File string `env:"KEYS_FILE"`
}

type Log struct {
	Level string `env:"LOG_LEVEL"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Core: Core{
			Concurrency: 200,
			TimeoutS:    15,
			Filter:      domain.FilterRootOnly.String(),
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load inicializa la configuración: defaults -> ENV -> FLAGS (flags tienen prioridad).
func Load(args []string) (Config, error) {
	return LoadFrom(args, nil)
}

// LoadFrom es Load con un entorno explícito; nil usa el del proceso.
func LoadFrom(args []string, environ map[string]string) (Config, error) {
	cfg := DefaultConfig()

	if err := loadFromEnv(&cfg, environ); err != nil {
		return cfg, err
	}

	if err := loadFromFlags(&cfg, args); err != nil {
		return cfg, err
	}

	normalize(&cfg)

	if cfg.PrintHelp || cfg.PrintVersion || cfg.ListSources {
		return cfg, nil
	}
	return cfg, cfg.Validate()
}

// loadFromEnv carga configuración desde variables VITA_*. Un valor que no
// se puede convertir (p.ej. VITA_CONCURRENCY=abc) es un error.
func loadFromEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// loadFromFlags parsea flags de CLI.
func loadFromFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("vita", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	var subsOnly bool

	// Input
	fs.StringVarP(&cfg.Input.Domain, "domain", "d", cfg.Input.Domain, "Target domain")
	fs.StringVarP(&cfg.Input.File, "file", "f", cfg.Input.File, "File with one host per line")

	// Sources
	fs.BoolVarP(&cfg.Source.All, "all", "a", cfg.Source.All, "Use every source, including credentialed ones")
	fs.StringSliceVarP(&cfg.Source.Exclude, "exclude", "x", cfg.Source.Exclude, "Sources to exclude (repeatable or comma separated)")
	fs.BoolVar(&cfg.ListSources, "list-sources", false, "List available sources and exit")

	// Core
	fs.BoolVarP(&subsOnly, "subs-only", "s", false, "Only keep strict subdomains of the input hosts")
	fs.IntVarP(&cfg.Core.Concurrency, "concurrency", "c", cfg.Core.Concurrency, "Maximum concurrent source units")
	fs.IntVarP(&cfg.Core.TimeoutS, "timeout", "t", cfg.Core.TimeoutS, "Per-request timeout in seconds")

	// Output
	fs.StringVarP(&cfg.Output.File, "output", "o", cfg.Output.File, "Also write results to this file")
	fs.BoolVar(&cfg.Output.JSON, "json", cfg.Output.JSON, "Write a single JSON document instead of lines")
	fs.BoolVarP(&cfg.Output.Silent, "silent", "q", cfg.Output.Silent, "Print results only")

	// Network
	fs.StringVarP(&cfg.Network.ProxyURL, "proxy", "p", cfg.Network.ProxyURL, "HTTP(S) proxy URL")
	fs.Float64Var(&cfg.Network.RateLimit, "rate-limit", cfg.Network.RateLimit, "Requests per second across all sources (0 = unlimited)")

	// Credentials
	fs.StringVarP(&cfg.Credentials.File, "keys", "k", cfg.Credentials.File, "YAML file with provider credentials")

	// Logging
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level: debug, info, warn, error")

	// Info
	fs.BoolVarP(&cfg.PrintVersion, "version", "v", false, "Print version and exit")
	fs.BoolVarP(&cfg.PrintHelp, "help", "h", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if subsOnly {
		cfg.Core.Filter = domain.FilterSubOnly.String()
	}
	cfg.Input.Args = fs.Args()
	return nil
}

func normalize(c *Config) {
	c.Input.Domain = strings.TrimSpace(c.Input.Domain)
	c.Input.File = strings.TrimSpace(c.Input.File)
	c.Core.Filter = strings.ToLower(strings.TrimSpace(c.Core.Filter))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	exclude := c.Source.Exclude[:0]
	for _, name := range c.Source.Exclude {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			exclude = append(exclude, name)
		}
	}
	c.Source.Exclude = exclude
}

// Validate reporta todos los valores inválidos; cualquiera es un error de setup.
func (c Config) Validate() error {
	var errs []error
	if c.Core.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("%w: got %d", domain.ErrInvalidConcurrency, c.Core.Concurrency))
	}
	if c.Core.TimeoutS < 1 {
		errs = append(errs, fmt.Errorf("%w: got %d", domain.ErrInvalidTimeout, c.Core.TimeoutS))
	}
	if _, err := domain.ParseFilterMode(c.Core.Filter); err != nil {
		errs = append(errs, err)
	}
	if c.Network.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate limit must be >= 0, got %v", c.Network.RateLimit))
	}
	if c.Network.ProxyURL != "" {
		if u, err := url.Parse(c.Network.ProxyURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("invalid proxy URL %q", c.Network.ProxyURL))
		}
	}
	return errors.Join(errs...)
}

// FilterMode retorna el modo de filtrado ya validado.
func (c Config) FilterMode() domain.FilterMode {
	mode, err := domain.ParseFilterMode(c.Core.Filter)
	if err != nil {
		return domain.FilterRootOnly
	}
	return mode
}

// Profile traduce --all al perfil de fuentes.
func (c Config) Profile() domain.SourceProfile {
	return domain.ProfileFromAll(c.Source.All)
}

// LogLevel retorna el nivel de log; --silent lo sube a error.
func (c Config) LogLevel() logx.Level {
	if c.Output.Silent {
		return logx.LevelError
	}
	return logx.ParseLevel(c.Log.Level)
}

// ToJSON serializa la configuración efectiva en una sola línea, para el
// log de depuración del arranque. Las acciones (-h, -v) no se incluyen.
func (c Config) ToJSON() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Timeout devuelve el timeout por petición como time.Duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Core.TimeoutS) * time.Second
}
