// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"runtime"
)

const helpText = `
vita - passive subdomain discovery

USAGE:
  vita -d <domain> [options]
  vita [options] <domain> [domain...]
  cat hosts.txt | vita [options]

INPUT OPTIONS:
  -d, --domain string      Target domain
  -f, --file string        File with one host per line
                           Without -d, -f or arguments, hosts are read from stdin

SOURCE OPTIONS:
  -a, --all                Use every source, including those that need API keys
  -x, --exclude strings    Sources to exclude (repeatable or comma separated)
      --list-sources       List available sources and exit

FILTER OPTIONS:
  -s, --subs-only          Only keep strict subdomains of the input hosts
                           (default keeps every name under the same registrable domain)

PERFORMANCE OPTIONS:
  -c, --concurrency int    Maximum concurrent (host, source) units (default: 200)
  -t, --timeout int        Per-request timeout in seconds (default: 15)
      --rate-limit float   Requests per second across all sources, 0=unlimited

OUTPUT OPTIONS:
  -o, --output string      Also write results to this file
      --json               Write one JSON document instead of one name per line
  -q, --silent             Print results only

NETWORK OPTIONS:
  -p, --proxy string       HTTP(S) proxy URL for outbound requests (optional)

CREDENTIALS:
  -k, --keys string        YAML file with provider keys (environment variables win)

LOGGING:
      --log-level string   debug, info, warn or error (default: info)

INFO:
  -v, --version            Print version information and exit
  -h, --help               Show this help message

EXAMPLES:
  Free sources only:
    vita -d hackerone.com

  Every source, strict subdomains, written to a file:
    vita -d hackerone.com -a -s -o hackerone.txt

  Several hosts from a file, without two sources:
    vita -f hosts.txt -x crtsh,wayback

  JSON document through a proxy:
    vita -d hackerone.com --json -p http://127.0.0.1:8080

ENVIRONMENT VARIABLES:
  Every option can also be set with the VITA_ prefix:

  VITA_DOMAIN, VITA_FILE, VITA_ALL, VITA_EXCLUDE, VITA_FILTER (root|sub),
  VITA_CONCURRENCY, VITA_TIMEOUT, VITA_RATE_LIMIT, VITA_OUTPUT, VITA_JSON,
  VITA_SILENT, VITA_PROXY, VITA_USER_AGENT, VITA_KEYS_FILE, VITA_LOG_LEVEL

  Provider keys (needed with --all):
  CHAOS_KEY, SECURITY_TRAILS_KEY, BINARYEDGE_TOKEN, PASSIVETOTAL_KEY,
  PASSIVETOTAL_SECRET, FB_APP_ID, FB_APP_SECRET, SPYSE_TOKEN, C99_KEY,
  INTELX_KEY, INTELX_URL
  Optional: URLSCAN_KEY, VIRUSTOTAL_KEY

  Note: CLI flags override environment variables.

OUTPUT:
  Results go to stdout, logs and the run summary to stderr.
  Exit status: 0 on success (even with no results), 1 if writing the
  output failed, 2 on invalid input or configuration.
`

// PrintHelp escribe el mensaje de ayuda en w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "vita %s\n", version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", getGoVersion())
}

func getGoVersion() string {
	return runtime.Version()
}
