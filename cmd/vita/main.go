// cmd/vita/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/term"

	"vita/internal/adapters/output"
	"vita/internal/core/domain"
	"vita/internal/core/ports"
	"vita/internal/core/usecases"
	"vita/internal/platform/config"
	"vita/internal/platform/credentials"
	"vita/internal/platform/httpclient"
	"vita/internal/platform/logx"
	"vita/internal/platform/registry"
	"vita/internal/platform/ui"
	"vita/internal/platform/validator"
	"vita/internal/sources"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Códigos de salida.
const (
	exitOK     = 0
	exitOutput = 1
	exitSetup  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := newApp().run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// app agrupa la E/S del proceso para poder ejecutarlo en tests.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// environ nil usa el entorno del proceso.
	environ map[string]string
	catalog func(logx.Logger) *registry.SourceRegistry
	styled  bool
}

func newApp() *app {
	return &app{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		catalog: sources.NewCatalog,
		styled:  isTerminal(os.Stderr),
	}
}

func (a *app) run(ctx context.Context, args []string) int {
	// 1. Config centralizada
	cfg, err := config.LoadFrom(args, a.environ)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		fmt.Fprintln(a.stderr, "Try: vita -h for help")
		return exitSetup
	}
	switch {
	case cfg.PrintHelp:
		config.PrintHelp(a.stdout)
		return exitOK
	case cfg.PrintVersion:
		config.PrintVersion(a.stdout, version, commit, date)
		return exitOK
	}

	if !a.styled {
		pterm.DisableStyling()
	}

	// 2. Logger compartido (stderr)
	logger := logx.NewWithWriter(a.stderr, cfg.LogLevel())
	if js, err := cfg.ToJSON(); err == nil {
		logger.Debug("effective config", "config", js)
	}
	catalog := a.catalog(logger)

	if cfg.ListSources {
		if err := printSources(a.stdout, catalog); err != nil {
			logger.Err(err, "phase", "list-sources")
			return exitOutput
		}
		return exitOK
	}

	if unknown := catalog.Unknown(cfg.Source.Exclude); len(unknown) > 0 {
		logger.Warn("ignoring unknown sources in exclusion list",
			"sources", strings.Join(unknown, ","),
			"known", strings.Join(catalog.List(), ","),
		)
	}

	// 3. Hosts de entrada
	inputs, err := collectInputs(cfg.Input, a.stdin)
	if err != nil {
		logger.Err(err, "phase", "input")
		return exitSetup
	}
	hosts, invalid := validator.ParseHosts(inputs)
	for _, raw := range invalid {
		logger.Warn("skipping invalid host", "input", raw)
	}
	if len(hosts) == 0 {
		logger.Err(domain.ErrNoHosts, "phase", "input")
		return exitSetup
	}

	// 4. Credenciales, cliente HTTP y fuentes activas
	store, err := credentials.LoadFrom(cfg.Credentials.File, a.environ)
	if err != nil {
		logger.Err(err, "phase", "credentials")
		return exitSetup
	}
	logger.Debug("credentials loaded", "vars", strings.Join(store.Available(), ","))

	client, err := httpclient.New(httpclient.Config{
		Timeout:   cfg.Timeout(),
		UserAgent: cfg.Network.UserAgent,
		ProxyURL:  cfg.Network.ProxyURL,
		RateLimit: cfg.Network.RateLimit,
	}, logger)
	if err != nil {
		logger.Err(err, "phase", "http-client")
		return exitSetup
	}
	logger.Debug("http client ready", "client", client.String())

	set, err := catalog.Build(cfg.Profile(), cfg.Source.Exclude, registry.Deps{
		Client:      client,
		Credentials: store,
		Logger:      logger,
	})
	if err != nil {
		logger.Err(err, "phase", "source-build")
		return exitSetup
	}

	// 5. Salida
	sink, err := a.buildSink(cfg, hosts)
	if err != nil {
		logger.Err(err, "phase", "output")
		return exitOutput
	}

	var presenter ui.Presenter = ui.NewNoopPresenter()
	if !cfg.Output.Silent {
		presenter = ui.NewPTermPresenter(a.stderr, len(hosts) == 1)
	}
	defer presenter.Close()

	runner, err := usecases.NewRunner(usecases.RunnerOptions{
		Sources:     set.Sources(),
		Concurrency: cfg.Core.Concurrency,
		Logger:      logger,
		Observers:   []ports.Observer{presenter},
	})
	if err != nil {
		logger.Err(err, "phase", "runner")
		_ = sink.Close()
		return exitSetup
	}

	logger.Info("vita starting",
		"version", version,
		"hosts", len(hosts),
		"sources", set.Len(),
		"profile", cfg.Profile().String(),
		"filter", cfg.FilterMode().String(),
		"concurrency", runner.Concurrency(),
	)

	// 6. Ejecución
	pp := usecases.NewPostProcessor(cfg.FilterMode(), hosts)
	logger.Debug("relevance roots", "mode", pp.Mode().String(), "roots", strings.Join(pp.Roots(), ","))
	start := time.Now()
	run := runner.Start(ctx, hosts)
	presenter.Start(ui.RunInfo{
		RunID:       run.ID,
		Hosts:       hosts,
		Sources:     set.Names(),
		Profile:     cfg.Profile(),
		Filter:      pp.Mode(),
		Concurrency: runner.Concurrency(),
		TimeoutS:    cfg.Core.TimeoutS,
	})

	written, outErr := consume(run, pp, sink, cfg.Output.JSON)
	run.Wait()
	if err := sink.Close(); err != nil && outErr == nil {
		outErr = err
	}

	// 7. Resumen
	stats := run.Stats()
	presenter.Finish(ui.Summary{
		Duration:  time.Since(start),
		Units:     stats.Units,
		Succeeded: stats.Succeeded,
		Failures:  stats.Failures,
		Raw:       stats.Names,
		Names:     written,
	})

	if ctx.Err() != nil {
		logger.Warn("run interrupted, partial results written", "names", written)
	}
	if outErr != nil {
		logger.Err(outErr, "phase", "output")
		return exitOutput
	}

	logger.Info("vita finished",
		"state", run.State().String(),
		"elapsed_ms", time.Since(start).Milliseconds(),
		"names", written,
		"failed_units", stats.Failed(),
	)
	return exitOK
}

// consume lleva los resultados del run al sink. En modo línea se escribe
// cada nombre nuevo en cuanto llega; con --json se agrega todo primero y
// se limpia el conjunto ordenado al cerrar el canal.
func consume(run *usecases.Run, pp *usecases.PostProcessor, sink ports.NameSink, asJSON bool) (int, error) {
	if asJSON {
		set := usecases.Collect(run.Results())
		return pp.Clean(set.Names(), sink)
	}

	n := 0
	for name := range pp.Filter(usecases.Unique(usecases.SplitFields(run.Names()))) {
		if err := sink.Write(name); err != nil {
			// Cortar la iteración detiene el run.
			return n, err
		}
		n++
	}
	return n, nil
}

// buildSink crea el sink de stdout y, con --output, el del fichero en el
// mismo formato.
func (a *app) buildSink(cfg config.Config, hosts []string) (ports.NameSink, error) {
	newSink := func(w io.Writer) ports.NameSink {
		if cfg.Output.JSON {
			return output.NewJSONWriter(w, hosts, false)
		}
		return output.NewLineWriter(w)
	}

	sinks := []ports.NameSink{newSink(a.stdout)}
	if cfg.Output.File != "" {
		f, err := output.OpenFile(cfg.Output.File)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, newSink(f))
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return output.NewMultiSink(sinks...), nil
}

// printSources muestra el catálogo: nombre, si requiere credenciales y
// qué variables consulta.
func printSources(w io.Writer, catalog *registry.SourceRegistry) error {
	data := pterm.TableData{{"Source", "Auth", "Variables", "Description"}}
	for _, meta := range catalog.GetAllMetadata() {
		auth := "no"
		if meta.RequiresAuth {
			auth = "yes"
		}
		vars := "-"
		if len(meta.EnvVars) > 0 {
			vars = strings.Join(meta.EnvVars, ",")
		}
		data = append(data, []string{meta.Name, auth, vars, meta.Description})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
