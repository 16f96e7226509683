// internal/core/usecases/runner.go
package usecases

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"vita/internal/core/domain"
	"vita/internal/core/ports"
	"vita/internal/platform/logx"
)

const (
	// DefaultConcurrency es el límite de unidades (host, fuente) simultáneas.
	DefaultConcurrency = 200

	// DefaultChannelSize es la capacidad del canal de agregación.
	DefaultChannelSize = 255
)

// Runner despacha una unidad de trabajo por cada par (host, fuente) con un
// límite global de concurrencia, y vuelca los lotes en un único canal.
// No filtra ni deduplica: eso es trabajo del PostProcessor.
type Runner struct {
	sources     []ports.Source
	concurrency int
	channelSize int
	logger      logx.Logger
	observers   []ports.Observer
}

// RunnerOptions configura el runner.
type RunnerOptions struct {
	Sources     []ports.Source
	Concurrency int
	ChannelSize int
	Logger      logx.Logger
	Observers   []ports.Observer
}

// NewRunner valida la configuración. Es el único punto donde el runner puede fallar.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Concurrency < 1 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidConcurrency, opts.Concurrency)
	}
	if len(opts.Sources) == 0 {
		return nil, domain.ErrNoSourcesAvailable
	}
	if opts.ChannelSize <= 0 {
		opts.ChannelSize = DefaultChannelSize
	}
	if opts.Logger == nil {
		opts.Logger = logx.NewNop()
	}

	return &Runner{
		sources:     append([]ports.Source(nil), opts.Sources...),
		concurrency: opts.Concurrency,
		channelSize: opts.ChannelSize,
		logger:      opts.Logger.With("component", "runner"),
		observers:   opts.Observers,
	}, nil
}

// Concurrency retorna el límite configurado.
func (r *Runner) Concurrency() int {
	return r.concurrency
}

// Start inicia una ejecución sobre hosts y retorna su handle inmediatamente.
// Cada llamada crea un canal nuevo, de modo que el runner es reutilizable.
//
// Cancelar ctx detiene el despacho de nuevas unidades y libera a los
// productores bloqueados en el envío; no hay plazo global de ejecución.
func (r *Runner) Start(ctx context.Context, hosts []string) *Run {
	runCtx, cancel := context.WithCancel(ctx)
	run := &Run{
		ID:       uuid.NewString(),
		results:  make(chan []string, r.channelSize),
		done:     make(chan struct{}),
		cancel:   cancel,
		failures: make(map[domain.ErrorKind]int),
		total:    len(hosts) * len(r.sources),
	}

	logger := r.logger.With("run", run.ID)
	logger.Debug("run created",
		"hosts", len(hosts),
		"sources", len(r.sources),
		"units", run.total,
		"concurrency", r.concurrency,
	)

	go r.dispatch(runCtx, run, hosts, logger)
	return run
}

// dispatch recorre el producto host x fuente. errgroup.SetLimit bloquea Go
// mientras haya tantas unidades pendientes como el límite.
func (r *Runner) dispatch(ctx context.Context, run *Run, hosts []string, logger logx.Logger) {
	defer close(run.done)
	defer run.cancel()

	var g errgroup.Group
	g.SetLimit(r.concurrency)

	run.state.Store(int32(domain.RunDispatching))
	started := time.Now()

dispatch:
	for _, host := range hosts {
		for _, src := range r.sources {
			if ctx.Err() != nil {
				break dispatch
			}
			run.dispatched.Add(1)
			g.Go(func() error {
				r.execute(ctx, run, src, host, logger)
				return nil
			})
		}
	}

	run.state.Store(int32(domain.RunDraining))
	_ = g.Wait()

	close(run.results)
	run.state.Store(int32(domain.RunClosed))

	stats := run.Stats()
	logger.Debug("run closed",
		"dispatched", stats.Dispatched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed(),
		"names", stats.Names,
		"peak_in_flight", stats.PeakInFlight,
		"duration_ms", time.Since(started).Milliseconds(),
	)
}

// execute ejecuta una unidad. Ningún error sale de aquí: todos se
// clasifican, se registran y se notifican a los observers.
func (r *Runner) execute(ctx context.Context, run *Run, src ports.Source, host string, logger logx.Logger) {
	run.enter()
	defer run.leave()

	start := time.Now()
	name := src.Name()

	// El proxy cuenta los nombres y hace el envío al canal compartido
	// respetando ctx, para que un consumidor abandonado no bloquee al productor.
	unitOut := make(chan []string)
	forwarded := make(chan int, 1)
	go func() {
		n := 0
		for batch := range unitOut {
			if len(batch) == 0 {
				continue
			}
			select {
			case run.results <- batch:
				n += len(batch)
				run.batches.Add(1)
			case <-ctx.Done():
			}
		}
		forwarded <- n
	}()

	err := invoke(ctx, src, host, unitOut)
	close(unitOut)
	names := <-forwarded
	run.names.Add(int64(names))

	if err == nil && ctx.Err() != nil && names == 0 {
		err = domain.NewTaskFailure(name, host, ctx.Err())
	}
	if err != nil && domain.Classify(err) == domain.KindUnexpected && ctx.Err() != nil {
		err = domain.NewTaskFailure(name, host, err)
	}

	kind := domain.Classify(err)
	run.record(kind)
	r.log(logger, name, host, kind, err)

	outcome := ports.Outcome{
		Source:   name,
		Host:     host,
		Names:    names,
		Kind:     kind,
		Err:      err,
		Duration: time.Since(start),
	}
	for _, obs := range r.observers {
		obs.SourceFinished(outcome)
	}
}

// invoke llama a la fuente convirtiendo un panic en TaskFailure.
func invoke(ctx context.Context, src ports.Source, host string, out chan<- []string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = domain.NewTaskFailure(src.Name(), host, fmt.Errorf("panic: %v", p))
		}
	}()
	return src.Run(ctx, host, out)
}

func (r *Runner) log(logger logx.Logger, source, host string, kind domain.ErrorKind, err error) {
	switch kind {
	case domain.KindNone:
		logger.Debug("source completed", "source", source, "host", host)
	case domain.KindSource:
		logger.Debug("source returned no results", "source", source, "host", host, "error", err.Error())
	case domain.KindKey:
		logger.Debug("source skipped, missing credentials",
			"source", source,
			"missing", strings.Join(domain.MissingKeys(err), ","),
		)
	case domain.KindAuth:
		logger.Warn("source rejected request", "source", source, "host", host, "error", err.Error())
	case domain.KindTask:
		logger.Warn("source task failed", "source", source, "host", host, "error", err.Error())
	default:
		logger.Debug("source failed", "source", source, "host", host, "error", err.Error())
	}
}

// Run es el handle de una ejecución en curso.
type Run struct {
	ID string

	results chan []string
	done    chan struct{}
	cancel  context.CancelFunc
	state   atomic.Int32
	total   int

	dispatched atomic.Int64
	completed  atomic.Int64
	succeeded  atomic.Int64
	batches    atomic.Int64
	names      atomic.Int64
	inFlight   atomic.Int64
	peak       atomic.Int64

	mu       sync.Mutex
	failures map[domain.ErrorKind]int
}

// Results expone el extremo consumidor del canal. Se cierra cuando todas
// las unidades despachadas han terminado.
func (run *Run) Results() <-chan []string {
	return run.results
}

// Batches recorre los lotes hasta el cierre del canal. Si el consumidor
// corta la iteración, la ejecución se detiene.
func (run *Run) Batches() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for batch := range run.results {
			if !yield(batch) {
				run.Stop()
				return
			}
		}
	}
}

// Names aplana Batches en nombres individuales, sin filtrar ni deduplicar.
func (run *Run) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for batch := range run.Batches() {
			for _, name := range batch {
				if !yield(name) {
					return
				}
			}
		}
	}
}

// Stop abandona la ejecución: no se despachan más unidades y los envíos
// pendientes se descartan. El canal se cierra igualmente al terminar.
func (run *Run) Stop() {
	run.cancel()
}

// Done se cierra cuando la ejecución llega a Closed.
func (run *Run) Done() <-chan struct{} {
	return run.done
}

// Wait bloquea hasta Closed. No consume el canal.
func (run *Run) Wait() {
	<-run.done
}

// State retorna el estado actual.
func (run *Run) State() domain.RunState {
	return domain.RunState(run.state.Load())
}

func (run *Run) enter() {
	n := run.inFlight.Add(1)
	for {
		peak := run.peak.Load()
		if n <= peak || run.peak.CompareAndSwap(peak, n) {
			return
		}
	}
}

func (run *Run) leave() {
	run.inFlight.Add(-1)
	run.completed.Add(1)
}

func (run *Run) record(kind domain.ErrorKind) {
	if kind == domain.KindNone {
		run.succeeded.Add(1)
		return
	}
	run.mu.Lock()
	run.failures[kind]++
	run.mu.Unlock()
}

// RunStats es una instantánea de contadores de la ejecución.
type RunStats struct {
	Units        int
	Dispatched   int
	Completed    int
	Succeeded    int
	Batches      int
	Names        int
	PeakInFlight int
	Failures     map[domain.ErrorKind]int
}

// Failed suma todos los fallos.
func (s RunStats) Failed() int {
	n := 0
	for _, v := range s.Failures {
		n += v
	}
	return n
}

// Stats retorna los contadores actuales.
func (run *Run) Stats() RunStats {
	run.mu.Lock()
	failures := make(map[domain.ErrorKind]int, len(run.failures))
	for k, v := range run.failures {
		failures[k] = v
	}
	run.mu.Unlock()

	return RunStats{
		Units:        run.total,
		Dispatched:   int(run.dispatched.Load()),
		Completed:    int(run.completed.Load()),
		Succeeded:    int(run.succeeded.Load()),
		Batches:      int(run.batches.Load()),
		Names:        int(run.names.Load()),
		PeakInFlight: int(run.peak.Load()),
		Failures:     failures,
	}
}
