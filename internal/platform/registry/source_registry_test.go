// internal/platform/registry/source_registry_test.go
package registry

import (
	"errors"
	"testing"

	"vita/internal/core/domain"
	"vita/internal/core/ports"
	"vita/internal/platform/credentials"
	"vita/internal/platform/logx"
	"vita/internal/testutil"
)

func mockFactory(name string, auth bool) SourceFactory {
	return func(deps Deps) (ports.Source, error) {
		return &testutil.MockSource{SourceName: name, Auth: auth}, nil
	}
}

// catalog registra un catálogo reducido: dos fuentes libres y una con credenciales.
func catalog(t *testing.T) *SourceRegistry {
	t.Helper()
	r := NewSourceRegistry(logx.NewNop())
	r.MustRegister("crtsh", mockFactory("crtsh", false), Meta("certificate transparency"))
	r.MustRegister("wayback", mockFactory("wayback", false), Meta("archive"))
	r.MustRegister("chaos", mockFactory("chaos", true), Meta("chaos dataset", credentials.ChaosKey))
	return r
}

func TestSourceRegistry_Register(t *testing.T) {
	registry := NewSourceRegistry(logx.NewNop())

	err := registry.Register("Test", mockFactory("test", false), ports.SourceMetadata{})
	testutil.AssertNoError(t, err, "register should succeed")
	testutil.AssertTrue(t, registry.IsRegistered("test"), "source should be registered")
	testutil.AssertTrue(t, registry.IsRegistered("TEST"), "lookup is case-insensitive")

	metas := registry.GetAllMetadata()
	testutil.AssertLen(t, metas, 1, "metadata should exist")
	testutil.AssertEqual(t, metas[0].Name, "test", "metadata name is normalized")
}

func TestSourceRegistry_Register_Invalid(t *testing.T) {
	registry := NewSourceRegistry(logx.NewNop())

	testutil.AssertError(t, registry.Register("", mockFactory("x", false), ports.SourceMetadata{}), "empty name")
	testutil.AssertError(t, registry.Register("x", nil, ports.SourceMetadata{}), "nil factory")

	registry.Register("test", mockFactory("test", false), ports.SourceMetadata{})
	testutil.AssertError(t, registry.Register("test", mockFactory("test", false), ports.SourceMetadata{}), "duplicate registration should fail")
}

func TestSourceRegistry_MustRegister_Panics(t *testing.T) {
	registry := NewSourceRegistry(logx.NewNop())
	registry.MustRegister("dup", mockFactory("dup", false), ports.SourceMetadata{})

	defer func() {
		testutil.AssertNotNil(t, recover(), "duplicate MustRegister should panic")
	}()
	registry.MustRegister("dup", mockFactory("dup", false), ports.SourceMetadata{})
}

func TestSourceRegistry_Build_Profiles(t *testing.T) {
	tests := []struct {
		name    string
		profile domain.SourceProfile
		want    []string
	}{
		{"free profile skips keyed sources", domain.ProfileFree, []string{"crtsh", "wayback"}},
		{"all profile includes every source", domain.ProfileAll, []string{"chaos", "crtsh", "wayback"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := catalog(t).Build(tt.profile, nil, Deps{})
			testutil.AssertNoError(t, err, "build should succeed")
			testutil.AssertEqual(t, set.Names(), tt.want, "active sources")
		})
	}
}

func TestSourceRegistry_Build_Exclusions(t *testing.T) {
	t.Run("case-insensitive exclusion", func(t *testing.T) {
		set, err := catalog(t).Build(domain.ProfileAll, []string{"CRTSH", " chaos "}, Deps{})
		testutil.AssertNoError(t, err, "build should succeed")
		testutil.AssertEqual(t, set.Names(), []string{"wayback"}, "excluded sources removed")
	})

	t.Run("known source outside profile is a no-op", func(t *testing.T) {
		set, err := catalog(t).Build(domain.ProfileFree, []string{"chaos"}, Deps{})
		testutil.AssertNoError(t, err, "build should succeed")
		testutil.AssertEqual(t, set.Len(), 2, "free profile unchanged")
	})

	t.Run("unknown name is a no-op", func(t *testing.T) {
		set, err := catalog(t).Build(domain.ProfileFree, []string{"shodan"}, Deps{})
		testutil.AssertNoError(t, err, "unknown exclusion does not fail the build")
		testutil.AssertEqual(t, set.Names(), []string{"crtsh", "wayback"}, "free profile unchanged")
	})

	t.Run("excluding everything leaves no sources", func(t *testing.T) {
		_, err := catalog(t).Build(domain.ProfileFree, []string{"crtsh", "wayback"}, Deps{})
		testutil.AssertTrue(t, errors.Is(err, domain.ErrNoSourcesAvailable), "should be ErrNoSourcesAvailable")
	})
}

func TestSourceRegistry_Build_InvalidProfile(t *testing.T) {
	_, err := catalog(t).Build(domain.SourceProfile("paid"), nil, Deps{})
	testutil.AssertTrue(t, errors.Is(err, domain.ErrInvalidProfile), "should be ErrInvalidProfile")
}

func TestSourceRegistry_Build_FactoryError(t *testing.T) {
	r := catalog(t)
	r.MustRegister("broken", func(Deps) (ports.Source, error) {
		return nil, errors.New("boom")
	}, Meta("always fails"))

	set, err := r.Build(domain.ProfileFree, nil, Deps{})
	testutil.AssertNoError(t, err, "other sources still build")
	testutil.AssertNotContains(t, set.Names(), "broken", "broken source skipped")
}

func TestSourceRegistry_List(t *testing.T) {
	names := catalog(t).List()
	testutil.AssertEqual(t, names, []string{"chaos", "crtsh", "wayback"}, "should be sorted alphabetically")
}

func TestSourceRegistry_GetAllMetadata(t *testing.T) {
	metas := catalog(t).GetAllMetadata()

	testutil.AssertEqual(t, len(metas), 3, "three entries")
	testutil.AssertEqual(t, metas[0].Name, "chaos", "sorted by name")
	testutil.AssertTrue(t, metas[0].RequiresAuth, "chaos requires auth")
	testutil.AssertEqual(t, metas[0].EnvVars, []string{credentials.ChaosKey}, "env vars")
}

func TestSourceRegistry_Unknown(t *testing.T) {
	unknown := catalog(t).Unknown([]string{"CRTSH", "shodan", "", "censys"})
	testutil.AssertEqual(t, unknown, []string{"shodan", "censys"}, "unknown names")
}

func TestSet_Sources_ReturnsCopy(t *testing.T) {
	set, err := catalog(t).Build(domain.ProfileAll, nil, Deps{})
	testutil.AssertNoError(t, err, "build")

	sources := set.Sources()
	sources[0] = nil
	testutil.AssertNotNil(t, set.Sources()[0], "set is immutable")
}
