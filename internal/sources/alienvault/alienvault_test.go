package alienvault

import (
	"net/http"
	"testing"

	"vita/internal/core/domain"
	"vita/internal/sources/sourcetest"
	"vita/internal/testutil"
)

func TestBuildURL(t *testing.T) {
	s := New(nil, nil)
	testutil.AssertEqual(t, s.buildURL("hackerone.com"),
		"https://otx.alienvault.com/api/v1/indicators/domain/hackerone.com/passive_dns", "url")
}

func TestRun(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.JSON(http.StatusOK, `{
		"passive_dns": [
			{"hostname": "api.hackerone.com", "address": "1.2.3.4"},
			{"hostname": "docs.hackerone.com"},
			{"hostname": "api.hackerone.com"}
		],
		"count": 3
	}`))

	s := New(sourcetest.Client(t), testutil.NewTestLogger())
	s.BaseURL = srv.URL

	names, err := sourcetest.Run(t, s, "hackerone.com")
	testutil.AssertNoError(t, err, "run")
	testutil.AssertElementsMatch(t, names, []string{"api.hackerone.com", "docs.hackerone.com"}, "names")
	testutil.AssertEqual(t, srv.Last().URL.Path, "/api/v1/indicators/domain/hackerone.com/passive_dns", "path")
}

func TestRun_NoResults(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.JSON(http.StatusOK, `{"passive_dns": [], "count": 0}`))

	s := New(sourcetest.Client(t), nil)
	s.BaseURL = srv.URL

	names, err := sourcetest.Run(t, s, "anvubmxpa2vzdgvh.com")
	testutil.AssertEqual(t, domain.Classify(err), domain.KindSource, "kind")
	testutil.AssertLen(t, names, 0, "no names")
}

func TestRun_RateLimited(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.JSON(http.StatusTooManyRequests, `{}`))

	s := New(sourcetest.Client(t), nil)
	s.BaseURL = srv.URL

	_, err := sourcetest.Run(t, s, "hackerone.com")
	testutil.AssertEqual(t, domain.Classify(err), domain.KindAuth, "kind")
}
