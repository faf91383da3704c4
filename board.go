package minionboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jpalmerr/minionboard/dashboard"
	"github.com/jpalmerr/minionboard/internal/metrics"
	"github.com/jpalmerr/minionboard/internal/server"
	"github.com/jpalmerr/minionboard/internal/store"
)

const defaultPort = 8080

// Board polls a stats endpoint and serves the live dashboard.
//
// Board is created using [New] with functional options and started with
// [Board.Start]. The typical lifecycle is:
//
//	b, err := minionboard.New(minionboard.WithStatsURL(url))
//	if err != nil {
//	    slog.Error("failed to create board", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	b.Start(ctx) // blocks until context cancelled
type Board struct {
	title          string
	statsURL       string
	pollOpts       []PollOption
	poller         *Poller
	port           int
	logger         *slog.Logger
	renderFuncs    []RenderFunc
	metricsEnabled bool
}

// New creates a [Board] with the given options.
//
// A stats URL must be configured via [WithStatsURL]. Other options have
// defaults: port 8080, metrics enabled, and the [Poller] defaults.
//
// Returns an error if the stats URL is missing or any option is invalid.
func New(opts ...Option) (*Board, error) {
	cfg := &boardConfig{
		port:           defaultPort,
		metricsEnabled: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.statsURL == "" {
		return nil, errors.New("a stats URL is required")
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	b := &Board{
		title:          cfg.title,
		statsURL:       cfg.statsURL,
		pollOpts:       cfg.pollOpts,
		port:           cfg.port,
		logger:         logger,
		renderFuncs:    cfg.renderFuncs,
		metricsEnabled: cfg.metricsEnabled,
	}

	// validate the URL and poll options up front
	p, err := b.newPoller()
	if err != nil {
		return nil, err
	}
	b.poller = p

	return b, nil
}

// Start polls the stats endpoint and serves the dashboard until ctx is done.
//
// The first poll is issued immediately. Each successful cycle updates the
// snapshot served at /api/stats and pushed over /api/sse, then calls the
// render functions registered with [WithRenderFunc].
//
// Returns nil on graceful shutdown, or an error if the HTTP server fails to
// start.
func (b *Board) Start(ctx context.Context) error {
	b.logger.Info("minionboard starting", "stats_url", b.statsURL)
	b.logger.Info("polling configured", "interval", b.poller.Interval().String())
	b.logger.Info("dashboard available", "url", fmt.Sprintf("http://localhost:%d", b.port))

	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	snapshots := store.NewMemoryStore()

	var m *metrics.Metrics
	var metricsHandler http.Handler
	if b.metricsEnabled {
		m = metrics.New()
		metricsHandler = m.Handler()
	}

	p, err := b.newPoller(WithCycleHook(func(r CycleResult) {
		b.record(r, snapshots, m)
	}))
	if err != nil {
		return err
	}

	httpServer := server.NewServer(snapshots, b.port, dashboard.Assets, b.title, metricsHandler, b.logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.Start(gctx); err != nil {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		<-gctx.Done()
		return nil
	})

	g.Go(func() error {
		return p.Run(gctx, b.render)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	b.logger.Info("minionboard stopped")
	return nil
}

// Poller returns the configured poller, without the board's own hooks.
func (b *Board) Poller() *Poller {
	return b.poller
}

// Port returns the configured HTTP port for the dashboard server.
func (b *Board) Port() int {
	return b.port
}

// Title returns the configured dashboard title.
func (b *Board) Title() string {
	return b.title
}

// newPoller builds a poller from the board's options. The board logger is
// applied first so a [WithPollLogger] in the user's options wins.
func (b *Board) newPoller(extra ...PollOption) (*Poller, error) {
	opts := make([]PollOption, 0, len(b.pollOpts)+len(extra)+1)
	opts = append(opts, WithPollLogger(b.logger))
	opts = append(opts, b.pollOpts...)
	opts = append(opts, extra...)
	return NewPoller(b.statsURL, opts...)
}

// record stores and measures one cycle. It runs before the render functions
// so sinks observe data that is already being served.
func (b *Board) record(r CycleResult, snapshots store.Store, m *metrics.Metrics) {
	if m != nil {
		m.ObserveCycle(r.OK(), r.Latency, r.StartedAt)
	}
	if !r.OK() {
		return
	}

	snapshots.Update(snapshotFromResult(r))
	if m != nil {
		// fields missing from this payload must not keep their old value
		m.ResetCounts()
		r.Stats.Each(m.SetCount)
		if r.Stats.Uptime != nil {
			m.SetUptime(*r.Stats.Uptime)
		}
	}
}

// render calls every registered render function.
func (b *Board) render(s Stats) {
	for _, fn := range b.renderFuncs {
		b.renderSafe(fn, s)
	}
}

// renderSafe calls a render function with panic recovery so one failing
// sink does not skip the ones after it.
func (b *Board) renderSafe(fn RenderFunc, s Stats) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("render function panicked",
				"correlation_id", uuid.NewString(),
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn(s)
}

// snapshotFromResult converts a successful cycle to the stored snapshot.
func snapshotFromResult(r CycleResult) store.Snapshot {
	snap := store.Snapshot{
		ActiveJobs:      copyCount(r.Stats.ActiveJobs),
		ActiveLocks:     copyCount(r.Stats.ActiveLocks),
		FailedJobs:      copyCount(r.Stats.FailedJobs),
		FinishedJobs:    copyCount(r.Stats.FinishedJobs),
		InactiveJobs:    copyCount(r.Stats.InactiveJobs),
		ActiveWorkers:   copyCount(r.Stats.ActiveWorkers),
		InactiveWorkers: copyCount(r.Stats.InactiveWorkers),
		DelayedJobs:     copyCount(r.Stats.DelayedJobs),
		EnqueuedJobs:    copyCount(r.Stats.EnqueuedJobs),
		Uptime:          copySeconds(r.Stats.Uptime),
		UpdatedAt:       r.StartedAt.Add(r.Latency),
		LatencyMs:       r.Latency.Milliseconds(),
	}
	if n, ok := r.Stats.Workers(); ok {
		snap.Workers = &n
	}
	return snap
}
