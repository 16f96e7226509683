package spyse

import (
	"net/http"
	"testing"

	"vita/internal/core/domain"
	"vita/internal/platform/credentials"
	"vita/internal/sources/sourcetest"
	"vita/internal/testutil"
)

func TestRun(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.JSON(http.StatusOK,
		`{"data":{"items":[{"name":"www.hackerone.com"},{"name":"docs.hackerone.com"}],"total_items":2}}`))
	s := New(sourcetest.Client(t), nil, credentials.FromMap(map[string]string{credentials.SpyseToken: "tok"}))
	s.BaseURL = srv.URL

	names, err := sourcetest.Run(t, s, "hackerone.com")
	testutil.AssertNoError(t, err, "run")
	testutil.AssertEqual(t, names, []string{"www.hackerone.com", "docs.hackerone.com"}, "names")

	req := srv.Last()
	testutil.AssertEqual(t, req.Header.Get("Authorization"), "Bearer tok", "bearer token")
	testutil.AssertEqual(t, req.URL.Query().Get("limit"), "100", "limit")
	testutil.AssertEqual(t, req.URL.Query().Get("domain"), "hackerone.com", "domain")
}

func TestRun_MissingKey(t *testing.T) {
	s := New(sourcetest.Client(t), nil, credentials.Empty())

	_, err := sourcetest.Run(t, s, "hackerone.com")
	testutil.AssertEqual(t, domain.MissingKeys(err), []string{credentials.SpyseToken}, "missing")
}

func TestRun_RateLimited(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.JSON(http.StatusTooManyRequests, `{}`))
	s := New(sourcetest.Client(t), nil, credentials.FromMap(map[string]string{credentials.SpyseToken: "tok"}))
	s.BaseURL = srv.URL

	_, err := sourcetest.Run(t, s, "hackerone.com")
	testutil.AssertEqual(t, domain.Classify(err), domain.KindAuth, "429 is reported as an auth failure")
}
