// Package facebook consulta la API de Certificate Transparency de Facebook.
// Necesita app id y secret para obtener antes un token de acceso.
package facebook

import (
	"context"
	"net/url"

	"vita/internal/core/domain"
	"vita/internal/core/ports"
	"vita/internal/platform/credentials"
	"vita/internal/platform/errors"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
	"vita/internal/platform/registry"
	"vita/internal/sources/common"
)

const (
	Name           = "facebook"
	defaultBaseURL = "https://graph.facebook.com"
)

// Register añade la fuente al registry.
func Register(r *registry.SourceRegistry) {
	r.MustRegister(Name,
		func(deps registry.Deps) (ports.Source, error) {
			return New(deps.Client, deps.Logger, deps.Credentials), nil
		},
		registry.Meta("Facebook Certificate Transparency",
			credentials.FacebookAppID, credentials.FacebookAppSecret),
	)
}

type Source struct {
	common.BaseSource
	appID     string
	appSecret string
}

func New(client *httpclient.Client, logger logx.Logger, store *credentials.Store) *Source {
	s := &Source{
		BaseSource: common.NewBaseSource(client, logger, common.BaseConfig{
			Name:         Name,
			RequiresAuth: true,
			BaseURL:      defaultBaseURL,
		}),
	}
	keys := s.ResolveKeys(store, credentials.FacebookAppID, credentials.FacebookAppSecret)
	s.appID = keys[credentials.FacebookAppID]
	s.appSecret = keys[credentials.FacebookAppSecret]
	return s
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type certResponse struct {
	Data []struct {
		Domains []string `json:"domains"`
	} `json:"data"`
}

func (s *Source) tokenURL() string {
	return s.URL("/oauth/access_token?client_id=%s&client_secret=%s&grant_type=client_credentials",
		url.QueryEscape(s.appID), url.QueryEscape(s.appSecret))
}

func (s *Source) buildURL(host, token string) string {
	return s.URL("/certificates?fields=domains&access_token=%s&query=%s",
		url.QueryEscape(token), url.QueryEscape("*."+host))
}

// accessToken obtiene el token de aplicación. Cualquier fallo aquí se
// reporta como error de autenticación.
func (s *Source) accessToken(ctx context.Context, host string) (string, error) {
	var tok tokenResponse
	if err := s.GetJSON(ctx, host, s.tokenURL(), nil, &tok); err != nil {
		if domain.Classify(err) == domain.KindAuth {
			return "", err
		}
		return "", domain.NewAuthError(Name, err)
	}
	if tok.AccessToken == "" {
		return "", domain.NewAuthError(Name, errors.Wrap(errors.ErrEmptyResponse, "no access token"))
	}
	return tok.AccessToken, nil
}

func (s *Source) Run(ctx context.Context, host string, out chan<- []string) error {
	if err := s.KeyErr(); err != nil {
		return err
	}

	token, err := s.accessToken(ctx, host)
	if err != nil {
		return err
	}

	var resp certResponse
	if err := s.GetJSON(ctx, host, s.buildURL(host, token), nil, &resp); err != nil {
		return err
	}

	var names []string
	for _, cert := range resp.Data {
		names = append(names, cert.Domains...)
	}
	return s.Emit(ctx, out, host, names)
}
