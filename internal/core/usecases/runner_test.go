// internal/core/usecases/runner_test.go
package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"vita/internal/core/domain"
	"vita/internal/core/ports"
	"vita/internal/testutil"
)

func TestNewRunner(t *testing.T) {
	src := &testutil.MockSource{SourceName: "crtsh"}

	tests := []struct {
		name    string
		opts    RunnerOptions
		wantErr error
	}{
		{"valid", RunnerOptions{Sources: toSources(src), Concurrency: 1}, nil},
		{"zero concurrency", RunnerOptions{Sources: toSources(src), Concurrency: 0}, domain.ErrInvalidConcurrency},
		{"negative concurrency", RunnerOptions{Sources: toSources(src), Concurrency: -3}, domain.ErrInvalidConcurrency},
		{"no sources", RunnerOptions{Concurrency: 10}, domain.ErrNoSourcesAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRunner(tt.opts)
			if tt.wantErr != nil {
				testutil.AssertErrorIs(t, err, tt.wantErr, "constructor error")
				testutil.AssertNil(t, r, "runner should be nil on error")
				return
			}
			testutil.AssertNoError(t, err, "constructor should succeed")
			testutil.AssertEqual(t, r.Concurrency(), tt.opts.Concurrency, "concurrency")
		})
	}
}

func TestRunner_ConcurrencyBound(t *testing.T) {
	hosts := []string{"a.com", "b.com", "c.com", "d.com"}

	for _, limit := range []int{1, 2, 3, 7} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			g := &gauge{}
			var mocks []*testutil.MockSource
			for i := 0; i < 5; i++ {
				mocks = append(mocks, gaugedSource(fmt.Sprintf("src%d", i), g, 5*time.Millisecond))
			}

			r, err := NewRunner(RunnerOptions{
				Sources:     toSources(mocks...),
				Concurrency: limit,
				Logger:      testutil.NewTestLogger(),
			})
			testutil.AssertNoError(t, err, "runner")

			run := r.Start(context.Background(), hosts)
			set := Collect(run.Results())

			stats := run.Stats()
			testutil.AssertTrue(t, g.peak.Load() <= int64(limit), "observed concurrency exceeded limit")
			testutil.AssertTrue(t, stats.PeakInFlight <= limit, "reported peak exceeded limit")
			testutil.AssertEqual(t, stats.Dispatched, len(hosts)*len(mocks), "every pair dispatched")
			testutil.AssertEqual(t, stats.Succeeded, len(hosts)*len(mocks), "every pair succeeded")
			testutil.AssertEqual(t, set.Len(), len(hosts)*len(mocks), "one name per pair")
		})
	}
}

func TestRunner_EndToEndHackerone(t *testing.T) {
	sources := toSources(
		&testutil.MockSource{SourceName: "one", Names: []string{"api.hackerone.com"}},
		&testutil.MockSource{SourceName: "two", Names: []string{"docs.hackerone.com", "hackerone.com"}},
		&testutil.MockSource{SourceName: "three", Auth: true, Err: domain.NewKeyError("three", "THREE_KEY")},
	)

	r, err := NewRunner(RunnerOptions{Sources: sources, Concurrency: DefaultConcurrency, Logger: testutil.NewTestLogger()})
	testutil.AssertNoError(t, err, "runner")

	hosts := []string{"hackerone.com"}
	run := r.Start(context.Background(), hosts)

	pp := NewPostProcessor(domain.FilterRootOnly, hosts)
	var got []string
	for name := range pp.Filter(Unique(SplitFields(run.Names()))) {
		got = append(got, name)
	}

	testutil.AssertElementsMatch(t, got, testutil.FixtureHackeroneExpected, "final output")
	testutil.AssertEqual(t, run.State(), domain.RunClosed, "run should be closed")
	testutil.AssertEqual(t, run.Stats().Failures[domain.KindKey], 1, "key error counted")
}

func TestRunner_ChannelCloses(t *testing.T) {
	r, err := NewRunner(RunnerOptions{
		Sources: toSources(
			&testutil.MockSource{SourceName: "empty"},
			&testutil.MockSource{SourceName: "fails", Err: domain.NewSourceError("fails", "example.com", nil)},
		),
		Concurrency: 2,
	})
	testutil.AssertNoError(t, err, "runner")

	run := r.Start(context.Background(), []string{"example.com"})

	done := make(chan int)
	go func() {
		n := 0
		for range run.Results() {
			n++
		}
		done <- n
	}()

	select {
	case n := <-done:
		testutil.AssertEqual(t, n, 0, "no batches expected")
	case <-time.After(2 * time.Second):
		t.Fatal("consumer blocked after every unit completed")
	}

	<-run.Done()
	testutil.AssertEqual(t, run.State(), domain.RunClosed, "state")
}

func TestRunner_FailuresAreIsolated(t *testing.T) {
	obs := &recordingObserver{}
	sources := toSources(
		&testutil.MockSource{SourceName: "ok", Names: []string{"www.example.com"}},
		&testutil.MockSource{SourceName: "nodata", Err: domain.NewSourceError("nodata", "example.com", nil)},
		&testutil.MockSource{SourceName: "denied", Err: domain.NewAuthError("denied", errors.New("401"))},
		&testutil.MockSource{SourceName: "nokey", Err: domain.NewKeyError("nokey", "NOKEY_TOKEN")},
		&testutil.MockSource{SourceName: "boom", RunFunc: func(context.Context, string, chan<- []string) error {
			panic("decoder exploded")
		}},
		&testutil.MockSource{SourceName: "weird", Err: errors.New("something else")},
	)

	r, err := NewRunner(RunnerOptions{
		Sources:     sources,
		Concurrency: 3,
		Logger:      testutil.NewTestLogger(),
		Observers:   []ports.Observer{obs},
	})
	testutil.AssertNoError(t, err, "runner")

	run := r.Start(context.Background(), []string{"example.com"})
	set := Collect(run.Results())

	testutil.AssertEqual(t, set.Names(), []string{"www.example.com"}, "only the healthy source contributes")

	stats := run.Stats()
	testutil.AssertEqual(t, stats.Succeeded, 1, "succeeded")
	testutil.AssertEqual(t, stats.Failed(), 5, "failed")
	testutil.AssertEqual(t, stats.Failures[domain.KindSource], 1, "source errors")
	testutil.AssertEqual(t, stats.Failures[domain.KindAuth], 1, "auth errors")
	testutil.AssertEqual(t, stats.Failures[domain.KindKey], 1, "key errors")
	testutil.AssertEqual(t, stats.Failures[domain.KindTask], 1, "task failures")
	testutil.AssertEqual(t, stats.Failures[domain.KindUnexpected], 1, "unexpected errors")

	kinds := map[string]domain.ErrorKind{}
	for _, o := range obs.Outcomes() {
		kinds[o.Source] = o.Kind
	}
	testutil.AssertLen(t, kinds, 6, "one outcome per unit")
	testutil.AssertEqual(t, kinds["boom"], domain.KindTask, "panic becomes task failure")
	testutil.AssertEqual(t, kinds["ok"], domain.KindNone, "ok outcome")
}

func TestRunner_AdmissionSpansHosts(t *testing.T) {
	g := &gauge{}
	src := gaugedSource("only", g, 5*time.Millisecond)

	r, err := NewRunner(RunnerOptions{Sources: toSources(src), Concurrency: 2})
	testutil.AssertNoError(t, err, "runner")

	hosts := []string{"a.com", "b.com", "c.com", "d.com", "e.com", "f.com"}
	run := r.Start(context.Background(), hosts)
	Collect(run.Results())

	// Un solo source y muchos hosts: el límite es global, no por host.
	testutil.AssertTrue(t, g.peak.Load() <= 2, "limit applies across hosts")
	testutil.AssertElementsMatch(t, src.Hosts(), hosts, "every host visited once")
}

func TestRunner_CanceledBeforeStart(t *testing.T) {
	src := &testutil.MockSource{SourceName: "never", Names: []string{"a.example.com"}}
	r, err := NewRunner(RunnerOptions{Sources: toSources(src), Concurrency: 4})
	testutil.AssertNoError(t, err, "runner")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := r.Start(ctx, []string{"example.com", "example.org"})
	set := Collect(run.Results())

	testutil.AssertEqual(t, set.Len(), 0, "nothing collected")
	testutil.AssertEqual(t, run.Stats().Dispatched, 0, "nothing dispatched")
	testutil.AssertEqual(t, src.Calls(), 0, "source never invoked")
}

func TestRunner_ConsumerStopsEarly(t *testing.T) {
	var mocks []*testutil.MockSource
	for i := 0; i < 20; i++ {
		mocks = append(mocks, &testutil.MockSource{
			SourceName: fmt.Sprintf("s%d", i),
			Names:      []string{fmt.Sprintf("n%d.example.com", i)},
		})
	}

	r, err := NewRunner(RunnerOptions{Sources: toSources(mocks...), Concurrency: 4, ChannelSize: 1})
	testutil.AssertNoError(t, err, "runner")

	run := r.Start(context.Background(), []string{"example.com"})
	for range run.Names() {
		break
	}

	select {
	case <-run.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("run did not close after the consumer stopped")
	}
	testutil.AssertEqual(t, run.State(), domain.RunClosed, "state")
}

func TestRunner_RestartablePerRun(t *testing.T) {
	src := &testutil.MockSource{SourceName: "crtsh", Names: []string{"a.example.com"}}
	r, err := NewRunner(RunnerOptions{Sources: toSources(src), Concurrency: 1})
	testutil.AssertNoError(t, err, "runner")

	first := r.Start(context.Background(), []string{"example.com"})
	second := r.Start(context.Background(), []string{"example.com"})

	testutil.AssertNotEqual(t, first.ID, second.ID, "distinct run ids")
	testutil.AssertEqual(t, Collect(first.Results()).Len(), 1, "first run")
	testutil.AssertEqual(t, Collect(second.Results()).Len(), 1, "second run")
	testutil.AssertEqual(t, src.Calls(), 2, "one call per run")
}

func TestRunner_EmptyBatchesAreDropped(t *testing.T) {
	src := &testutil.MockSource{SourceName: "hollow", RunFunc: func(ctx context.Context, host string, out chan<- []string) error {
		out <- nil
		out <- []string{}
		return nil
	}}
	r, err := NewRunner(RunnerOptions{Sources: toSources(src), Concurrency: 1})
	testutil.AssertNoError(t, err, "runner")

	run := r.Start(context.Background(), []string{"example.com"})
	batches := 0
	for range run.Batches() {
		batches++
	}
	testutil.AssertEqual(t, batches, 0, "empty batches never reach the channel")
	testutil.AssertEqual(t, run.Stats().Names, 0, "names")
}
