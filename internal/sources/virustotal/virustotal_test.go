package virustotal

import (
	"net/http"
	"testing"

	"vita/internal/core/domain"
	"vita/internal/sources/sourcetest"
	"vita/internal/testutil"
)

func TestBuildURL(t *testing.T) {
	testutil.AssertEqual(t, New(nil, nil, "").buildURL("hackerone.com"),
		"https://www.virustotal.com/ui/domains/hackerone.com/subdomains?limit=40", "public url")
	testutil.AssertEqual(t, New(nil, nil, "k").buildURL("hackerone.com"),
		"https://www.virustotal.com/api/v3/domains/hackerone.com/subdomains?limit=40", "api url")
}

func TestRun(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.JSON(http.StatusOK,
		`{"data":[{"id":"api.hackerone.com","type":"domain"},{"id":"www.hackerone.com","type":"domain"}]}`))
	s := New(sourcetest.Client(t), nil, "k")
	s.BaseURL = srv.URL

	names, err := sourcetest.Run(t, s, "hackerone.com")
	testutil.AssertNoError(t, err, "run")
	testutil.AssertEqual(t, names, []string{"api.hackerone.com", "www.hackerone.com"}, "names")
	testutil.AssertEqual(t, srv.Last().Header.Get("x-apikey"), "k", "key header")
}

func TestRun_Forbidden(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.JSON(http.StatusForbidden, `{"error":{"code":"RecaptchaRequiredError"}}`))
	s := New(sourcetest.Client(t), nil, "")
	s.BaseURL = srv.URL

	_, err := sourcetest.Run(t, s, "hackerone.com")
	testutil.AssertEqual(t, domain.Classify(err), domain.KindAuth, "kind")
}
