package minionboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/jpalmerr/minionboard/internal/poller"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultPollTimeout  = 10 * time.Second
)

// Poller polls a single stats URL.
//
// Poller is immutable after creation via [NewPoller]. Getters return copies
// of mutable data, so one Poller can be shared between goroutines and run
// more than once.
type Poller struct {
	url      string
	headers  map[string]string
	timeout  time.Duration
	interval time.Duration
	logger   *slog.Logger
	hooks    []func(CycleResult)
}

// NewPoller creates a [Poller] for rawURL, which must be an absolute http or
// https URL.
//
// Example:
//
//	p, err := minionboard.NewPoller("http://localhost:3000/minion/stats",
//	    minionboard.WithHeaders("Authorization", "Bearer token"),
//	)
func NewPoller(rawURL string, opts ...PollOption) (*Poller, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid stats URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, errors.New("stats URL must have an http:// or https:// scheme")
	}
	if parsedURL.Host == "" {
		return nil, errors.New("stats URL must have a host")
	}

	cfg := &pollConfig{
		headers:  make(map[string]string),
		timeout:  defaultPollTimeout,
		interval: defaultPollInterval,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Poller{
		url:      rawURL,
		headers:  cfg.headers,
		timeout:  cfg.timeout,
		interval: cfg.interval,
		logger:   logger,
		hooks:    cfg.hooks,
	}, nil
}

// URL returns the polled stats URL.
func (p *Poller) URL() string {
	return p.url
}

// Headers returns a copy of the headers sent with every request.
func (p *Poller) Headers() map[string]string {
	return copyMap(p.headers)
}

// Timeout returns the per-request timeout.
func (p *Poller) Timeout() time.Duration {
	return p.timeout
}

// Interval returns the delay between the end of one cycle and the start of
// the next.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Run polls until ctx is done and returns nil.
//
// The first request is issued immediately. After each cycle, successful or
// not, Run waits [Poller.Interval] before the next one, so at most one
// request is ever in flight. render is called once for every successful
// cycle with the decoded [Stats] and never for a failed one. Failures are
// not returned; they are visible only to hooks added with [WithCycleHook].
//
// render may be nil, in which case only hooks observe the cycles.
func (p *Poller) Run(ctx context.Context, render RenderFunc) error {
	return p.newLoop(render).Run(ctx)
}

// Once performs a single poll cycle without waiting and without calling
// hooks or a render function.
func (p *Poller) Once(ctx context.Context) CycleResult {
	loop := p.newLoop(nil)
	defer loop.Close()

	return cycleResultFromCycle(loop.Once(ctx))
}

// Fetch is [Poller.Once] reduced to its payload. The returned error wraps
// [ErrFetchFailed] on failure.
func (p *Poller) Fetch(ctx context.Context) (Stats, error) {
	r := p.Once(ctx)
	if !r.OK() {
		return Stats{}, r.Err
	}
	return r.Stats, nil
}

func (p *Poller) newLoop(render RenderFunc) *poller.Loop {
	cfg := poller.Config{
		URL:      p.url,
		Headers:  copyMap(p.headers),
		Timeout:  p.timeout,
		Interval: p.interval,
	}
	return poller.NewLoop(cfg, p.handler(render), p.logger)
}

// handler runs hooks on every cycle, then render on success.
// Panics are recovered by the loop.
func (p *Poller) handler(render RenderFunc) poller.Handler {
	return func(c poller.Cycle) {
		result := cycleResultFromCycle(c)
		for _, hook := range p.hooks {
			hook(result)
		}
		if result.OK() && render != nil {
			render(result.Stats)
		}
	}
}

// Poll polls url until ctx is done, calling render with every successfully
// decoded payload. It is shorthand for [NewPoller] followed by [Poller.Run].
//
// The only error Poll returns is a construction error from an invalid URL or
// option; fetch failures are retried forever.
//
// Example:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	minionboard.Poll(ctx, "http://localhost:3000/minion/stats", func(s minionboard.Stats) {
//	    if n, ok := s.Workers(); ok {
//	        fmt.Println("workers:", n)
//	    }
//	})
func Poll(ctx context.Context, url string, render RenderFunc, opts ...PollOption) error {
	p, err := NewPoller(url, opts...)
	if err != nil {
		return err
	}
	return p.Run(ctx, render)
}

// copyMap returns a shallow copy of m, or nil if m is empty.
func copyMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
