package poller

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// Cycle holds the outcome of one poll cycle.
type Cycle struct {
	// Payload is the decoded body. Only meaningful when Err is nil.
	Payload Payload

	// StatusCode is the HTTP status code, zero if no response was received.
	StatusCode int

	// Latency is the time taken by the request.
	Latency time.Duration

	// StartedAt is when the request was issued.
	StartedAt time.Time

	// Err wraps [ErrFetchFailed] when the cycle failed; nil on success.
	Err error
}

// OK reports whether the cycle produced a payload.
func (c Cycle) OK() bool {
	return c.Err == nil
}

// Handler receives every completed cycle, successful or not.
type Handler func(Cycle)

// Config contains what the loop needs to poll the stats endpoint.
type Config struct {
	// URL is the stats endpoint.
	URL string

	// Headers are sent with every request.
	Headers map[string]string

	// Timeout bounds each request. Zero means no per-request timeout.
	Timeout time.Duration

	// Interval is the delay between the end of one cycle and the start of
	// the next. It is the same after successes and failures.
	Interval time.Duration
}

// Loop polls a single stats endpoint sequentially.
//
// Each cycle issues one request, waits for it to resolve, hands the outcome
// to the handler, then waits Interval before the next cycle. There is never
// more than one request in flight, and the effective period is Interval plus
// the request latency.
type Loop struct {
	cfg     Config
	client  *Client
	handler Handler
	logger  *slog.Logger
}

// NewLoop creates a [Loop]. handler may be nil, in which case cycles are
// only logged.
func NewLoop(cfg Config, handler Handler, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		cfg:     cfg,
		client:  NewClient(),
		handler: handler,
		logger:  logger,
	}
}

// Run polls until ctx is done, then returns nil.
//
// The first request is issued immediately. Failures never stop the loop and
// are never returned; they only reach the handler.
func (l *Loop) Run(ctx context.Context) error {
	defer l.client.Close()

	for {
		cycle := l.Once(ctx)

		// a request aborted by shutdown is not a cycle
		if ctx.Err() != nil {
			return nil
		}

		if cycle.OK() {
			l.logger.Debug("stats poll completed",
				"url", l.cfg.URL,
				"latency_ms", cycle.Latency.Milliseconds(),
			)
		} else {
			l.logger.Debug("stats poll failed, retrying",
				"url", l.cfg.URL,
				"status_code", cycle.StatusCode,
				"retry_in", l.cfg.Interval.String(),
				"error", cycle.Err.Error(),
			)
		}
		l.dispatch(cycle)

		if !l.wait(ctx) {
			return nil
		}
	}
}

// wait blocks for the configured interval. It returns false if ctx ended first.
func (l *Loop) wait(ctx context.Context) bool {
	timer := time.NewTimer(l.cfg.Interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Once performs a single fetch and decode without invoking the handler.
func (l *Loop) Once(ctx context.Context) Cycle {
	startedAt := time.Now()
	resp := l.client.Fetch(ctx, l.cfg.URL, l.cfg.Headers, l.cfg.Timeout)

	cycle := Cycle{
		StatusCode: resp.StatusCode,
		Latency:    resp.Latency,
		StartedAt:  startedAt,
	}

	switch {
	case resp.Error != nil:
		cycle.Err = fmt.Errorf("%w: %w", ErrFetchFailed, resp.Error)
	case resp.Failed():
		cycle.Err = fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode)
	default:
		payload, err := Decode(resp.Body)
		if err != nil {
			cycle.Err = fmt.Errorf("%w: %w", ErrFetchFailed, err)
			break
		}
		cycle.Payload = payload
	}

	return cycle
}

// dispatch calls the handler with panic recovery.
// A panicking handler is logged with a correlation ID and the loop goes on.
func (l *Loop) dispatch(cycle Cycle) {
	if l.handler == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("stats handler panicked",
				"correlation_id", uuid.NewString(),
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	l.handler(cycle)
}

// Close releases idle connections. Only needed when [Loop.Once] is used
// without [Loop.Run].
func (l *Loop) Close() {
	l.client.Close()
}
