// Package common provides shared building blocks for HTTP-backed providers.
package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"vita/internal/core/domain"
	"vita/internal/platform/credentials"
	"vita/internal/platform/errors"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
)

// BaseSource provides the common state of a provider: identity, the shared
// HTTP client, its logger, an overridable endpoint and the outcome of the
// credential lookup performed at construction.
//
// Usage:
//  1. Embed BaseSource in your source struct
//  2. Build it with NewBaseSource and, if needed, ResolveKeys
//  3. Implement Run using GetJSON/GetText and Emit
type BaseSource struct {
	Client  *httpclient.Client
	Logger  logx.Logger
	BaseURL string

	name   string
	auth   bool
	keyErr error
}

// BaseConfig contains configuration for BaseSource.
type BaseConfig struct {
	Name         string
	RequiresAuth bool
	BaseURL      string
}

// NewBaseSource creates a BaseSource. A nil client gets a default one.
func NewBaseSource(client *httpclient.Client, logger logx.Logger, cfg BaseConfig) BaseSource {
	if client == nil {
		client = httpclient.Default()
	}
	if logger == nil {
		logger = logx.NewNop()
	}
	return BaseSource{
		Client:  client,
		Logger:  logger.With("source", cfg.Name),
		BaseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		name:    cfg.Name,
		auth:    cfg.RequiresAuth,
	}
}

func (b *BaseSource) Name() string       { return b.name }
func (b *BaseSource) RequiresAuth() bool { return b.auth }

// ResolveKeys looks up vars once. On failure the *domain.KeyError is kept
// and returned by KeyErr, so Run can refuse without touching the network.
func (b *BaseSource) ResolveKeys(store *credentials.Store, vars ...string) map[string]string {
	keys, err := store.Lookup(b.name, vars...)
	if err != nil {
		b.keyErr = err
		return map[string]string{}
	}
	b.keyErr = nil
	return keys
}

// KeyErr returns the stored credential error, if any.
func (b *BaseSource) KeyErr() error {
	return b.keyErr
}

// URL joins BaseURL with a formatted path.
func (b *BaseSource) URL(format string, args ...any) string {
	return b.BaseURL + fmt.Sprintf(format, args...)
}

// GetJSON performs a GET and decodes the body into v. Failures come back
// already classified.
func (b *BaseSource) GetJSON(ctx context.Context, host, url string, headers map[string]string, v any) error {
	return b.DoJSON(ctx, host, http.MethodGet, url, nil, headers, v)
}

// DoJSON is GetJSON for any method, with an optional JSON payload.
func (b *BaseSource) DoJSON(ctx context.Context, host, method, url string, payload any, headers map[string]string, v any) error {
	if err := b.Client.DecodeJSON(ctx, method, url, payload, headers, v); err != nil {
		return b.fail(host, err)
	}
	return nil
}

// GetBody performs a GET and returns the raw body.
func (b *BaseSource) GetBody(ctx context.Context, host, url string, headers map[string]string) ([]byte, error) {
	body, err := b.Client.FetchBody(ctx, http.MethodGet, url, nil, headers)
	if err != nil {
		return nil, b.fail(host, err)
	}
	return body, nil
}

// GetText performs a GET and returns the body as a string.
func (b *BaseSource) GetText(ctx context.Context, host, url string, headers map[string]string) (string, error) {
	text, err := b.Client.FetchText(ctx, url, headers)
	if err != nil {
		return "", b.fail(host, err)
	}
	return text, nil
}

// GetRawJSON performs a GET with Accept: application/json and returns the
// undecoded body, for providers whose payload is read with gjson.
func (b *BaseSource) GetRawJSON(ctx context.Context, host, url string, headers map[string]string) ([]byte, error) {
	body, err := b.Client.FetchJSON(ctx, url, headers)
	if err != nil {
		return nil, b.fail(host, err)
	}
	return body, nil
}

// Emit sends names as a single batch. See the package-level Emit.
func (b *BaseSource) Emit(ctx context.Context, out chan<- []string, host string, names []string) error {
	n, err := Emit(ctx, out, b.name, host, names)
	if err == nil {
		b.Logger.Debug("batch emitted", "host", host, "names", n)
	}
	return err
}

// fail logs the transport failure and classifies it.
func (b *BaseSource) fail(host string, err error) error {
	b.Logger.Debug("request failed",
		"host", host,
		"reason", errors.Reason(err),
		"status", errors.StatusCode(err),
	)
	return Classify(b.name, host, err)
}

// NoResults builds the SourceError for host.
func (b *BaseSource) NoResults(host string) error {
	return domain.NewSourceError(b.name, host, nil)
}
