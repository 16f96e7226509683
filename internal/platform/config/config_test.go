// internal/platform/config/config_test.go
package config

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vita/internal/core/domain"
	"vita/internal/platform/logx"
	"vita/internal/testutil"
)

var noEnv = map[string]string{}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	testutil.AssertEqual(t, cfg.Core.Concurrency, 200, "default concurrency")
	testutil.AssertEqual(t, cfg.Core.TimeoutS, 15, "default timeout")
	testutil.AssertEqual(t, cfg.FilterMode(), domain.FilterRootOnly, "default filter")
	testutil.AssertEqual(t, cfg.Profile(), domain.ProfileFree, "default profile")
	testutil.AssertNoError(t, cfg.Validate(), "defaults are valid")
}

func TestLoadFrom_Flags(t *testing.T) {
	cfg, err := LoadFrom([]string{
		"-d", " hackerone.com ",
		"-a",
		"-x", "crtsh,Wayback",
		"--exclude", "chaos",
		"-s",
		"-c", "16",
		"-t", "30",
		"-o", "out.txt",
		"--json",
		"-q",
		"-k", "keys.yaml",
		"-p", "http://127.0.0.1:8080",
		"--rate-limit", "2.5",
		"--log-level", "DEBUG",
		"extra.com", "other.com",
	}, noEnv)
	require.NoError(t, err)

	testutil.AssertEqual(t, cfg.Input.Domain, "hackerone.com", "domain trimmed")
	testutil.AssertEqual(t, cfg.Input.Args, []string{"extra.com", "other.com"}, "positional args")
	testutil.AssertTrue(t, cfg.Source.All, "all")
	testutil.AssertEqual(t, cfg.Source.Exclude, []string{"crtsh", "wayback", "chaos"}, "exclusions")
	testutil.AssertEqual(t, cfg.FilterMode(), domain.FilterSubOnly, "subs only")
	testutil.AssertEqual(t, cfg.Core.Concurrency, 16, "concurrency")
	testutil.AssertEqual(t, cfg.Timeout(), 30*time.Second, "timeout")
	testutil.AssertEqual(t, cfg.Output.File, "out.txt", "output")
	testutil.AssertTrue(t, cfg.Output.JSON, "json")
	testutil.AssertTrue(t, cfg.Output.Silent, "silent")
	testutil.AssertEqual(t, cfg.Credentials.File, "keys.yaml", "keys file")
	testutil.AssertEqual(t, cfg.Network.ProxyURL, "http://127.0.0.1:8080", "proxy")
	testutil.AssertEqual(t, cfg.Network.RateLimit, 2.5, "rate limit")
	testutil.AssertEqual(t, cfg.Log.Level, "debug", "log level lowercased")
	testutil.AssertEqual(t, cfg.LogLevel(), logx.LevelError, "silent raises the level")
}

func TestLoadFrom_EnvThenFlags(t *testing.T) {
	env := map[string]string{
		"VITA_DOMAIN":      "env.example.com",
		"VITA_CONCURRENCY": "8",
		"VITA_EXCLUDE":     "crtsh,rapiddns",
		"VITA_FILTER":      "sub",
		"VITA_USER_AGENT":  "custom/1.0",
	}

	cfg, err := LoadFrom(nil, env)
	require.NoError(t, err)
	testutil.AssertEqual(t, cfg.Input.Domain, "env.example.com", "domain from env")
	testutil.AssertEqual(t, cfg.Core.Concurrency, 8, "concurrency from env")
	testutil.AssertEqual(t, cfg.Source.Exclude, []string{"crtsh", "rapiddns"}, "exclude from env")
	testutil.AssertEqual(t, cfg.FilterMode(), domain.FilterSubOnly, "filter from env")
	testutil.AssertEqual(t, cfg.Network.UserAgent, "custom/1.0", "user agent from env")

	cfg, err = LoadFrom([]string{"-d", "flag.example.com", "-c", "4"}, env)
	require.NoError(t, err)
	testutil.AssertEqual(t, cfg.Input.Domain, "flag.example.com", "flag wins")
	testutil.AssertEqual(t, cfg.Core.Concurrency, 4, "flag wins")
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		env    map[string]string
		target error
	}{
		{name: "zero concurrency", args: []string{"-c", "0"}, target: domain.ErrInvalidConcurrency},
		{name: "negative concurrency", args: []string{"--concurrency=-3"}, target: domain.ErrInvalidConcurrency},
		{name: "zero timeout", args: []string{"-t", "0"}, target: domain.ErrInvalidTimeout},
		{name: "bad filter", env: map[string]string{"VITA_FILTER": "everything"}, target: domain.ErrInvalidFilterMode},
		{name: "non-integer flag", args: []string{"-c", "many"}},
		{name: "non-integer env", env: map[string]string{"VITA_TIMEOUT": "soon"}},
		{name: "unknown flag", args: []string{"--retries", "3"}},
		{name: "bad proxy", args: []string{"-p", "not a url"}},
		{name: "negative rate", args: []string{"--rate-limit", "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := tt.env
			if env == nil {
				env = noEnv
			}
			_, err := LoadFrom(tt.args, env)
			testutil.AssertError(t, err, "should fail")
			if tt.target != nil {
				testutil.AssertTrue(t, errors.Is(err, tt.target), "wraps the setup sentinel")
			}
		})
	}
}

func TestLoadFrom_InfoActionsSkipValidation(t *testing.T) {
	for _, args := range [][]string{{"-h", "-c", "0"}, {"--version", "-t", "0"}, {"--list-sources", "-c", "0"}} {
		cfg, err := LoadFrom(args, noEnv)
		testutil.AssertNoError(t, err, "info actions always load")
		testutil.AssertTrue(t, cfg.PrintHelp || cfg.PrintVersion || cfg.ListSources, "action set")
	}
}

func TestConfig_ToJSON(t *testing.T) {
	out, err := DefaultConfig().ToJSON()
	require.NoError(t, err)
	testutil.AssertContains(t, out, `"Concurrency":200`, "core section")
	testutil.AssertNotContains(t, out, "\n", "single line")
	testutil.AssertNotContains(t, out, "PrintHelp", "actions are not serialized")
}

func TestPrintHelpAndVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintHelp(&buf)
	testutil.AssertContains(t, buf.String(), "--subs-only", "help lists flags")

	buf.Reset()
	PrintVersion(&buf, "1.2.3", "abc123", "2026-01-01")
	testutil.AssertContains(t, buf.String(), "vita 1.2.3", "version line")
	testutil.AssertContains(t, buf.String(), "abc123", "commit")
}
