package passivetotal

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"vita/internal/core/domain"
	"vita/internal/platform/credentials"
	"vita/internal/sources/sourcetest"
	"vita/internal/testutil"
)

func withKeys() *credentials.Store {
	return credentials.FromMap(map[string]string{
		credentials.PassiveTotalKey:    "me@example.com",
		credentials.PassiveTotalSecret: "s3cret",
	})
}

func TestRun(t *testing.T) {
	var got query
	srv := sourcetest.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		sourcetest.JSON(http.StatusOK,
			`{"success":true,"primaryDomain":"hackerone.com","subdomains":["www","api"]}`)(w, r)
	})
	s := New(sourcetest.Client(t), nil, withKeys())
	s.BaseURL = srv.URL

	names, err := sourcetest.Run(t, s, "hackerone.com")
	testutil.AssertNoError(t, err, "run")
	testutil.AssertEqual(t, names, []string{"www.hackerone.com", "api.hackerone.com"}, "names")
	testutil.AssertEqual(t, got.Query, "hackerone.com", "query body")

	req := srv.Last()
	testutil.AssertEqual(t, req.Method, http.MethodGet, "method")
	user, pass, ok := req.BasicAuth()
	testutil.AssertTrue(t, ok, "basic auth present")
	testutil.AssertEqual(t, user, "me@example.com", "user")
	testutil.AssertEqual(t, pass, "s3cret", "secret")
}

func TestRun_NotSuccessful(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.JSON(http.StatusOK, `{"success":false,"subdomains":["www"]}`))
	s := New(sourcetest.Client(t), nil, withKeys())
	s.BaseURL = srv.URL

	names, err := sourcetest.Run(t, s, "hackerone.com")
	testutil.AssertEqual(t, domain.Classify(err), domain.KindSource, "kind")
	testutil.AssertLen(t, names, 0, "nothing emitted")
}

func TestRun_MissingSecret(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.JSON(http.StatusOK, `{}`))
	s := New(sourcetest.Client(t), nil, credentials.FromMap(map[string]string{
		credentials.PassiveTotalKey: "me@example.com",
	}))
	s.BaseURL = srv.URL

	_, err := sourcetest.Run(t, s, "hackerone.com")
	testutil.AssertEqual(t, domain.MissingKeys(err), []string{credentials.PassiveTotalSecret}, "missing")
	testutil.AssertLen(t, srv.Requests(), 0, "no request")
}
