package minionboard

import (
	"errors"
	"log/slog"
)

// boardConfig holds mutable state during Board construction.
type boardConfig struct {
	title          string
	statsURL       string
	pollOpts       []PollOption
	port           int
	logger         *slog.Logger
	renderFuncs    []RenderFunc
	metricsEnabled bool
}

// Option configures a [Board] during construction.
//
// Built-in options: [WithStatsURL], [WithPollOptions], [WithPort],
// [WithTitle], [WithLogger], [WithRenderFunc], [WithMetrics].
type Option func(*boardConfig) error

// WithStatsURL sets the stats endpoint the board polls. Required.
//
// Example:
//
//	b, err := minionboard.New(
//	    minionboard.WithStatsURL("http://localhost:3000/minion/stats"),
//	)
func WithStatsURL(rawURL string) Option {
	return func(cfg *boardConfig) error {
		if rawURL == "" {
			return errors.New("stats URL cannot be empty")
		}
		cfg.statsURL = rawURL
		return nil
	}
}

// WithPollOptions passes options to the board's [Poller].
// Can be called multiple times; options are applied in order.
//
// Example:
//
//	b, err := minionboard.New(
//	    minionboard.WithStatsURL(url),
//	    minionboard.WithPollOptions(
//	        minionboard.WithInterval(5*time.Second),
//	        minionboard.WithHeaders("Authorization", "Bearer token"),
//	    ),
//	)
func WithPollOptions(opts ...PollOption) Option {
	return func(cfg *boardConfig) error {
		cfg.pollOpts = append(cfg.pollOpts, opts...)
		return nil
	}
}

// WithPort sets the HTTP port for the dashboard server.
// Defaults to 8080.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *boardConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithTitle sets the dashboard title displayed in the browser tab and
// header. Defaults to "Minion".
func WithTitle(title string) Option {
	return func(cfg *boardConfig) error {
		cfg.title = title
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the board and, unless
// [WithPollLogger] is passed through [WithPollOptions], its poller.
// Defaults to [slog.Default].
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *boardConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithRenderFunc registers an extra render sink. Sinks are called after the
// dashboard snapshot has been updated, in registration order, once per
// successful cycle.
//
// Sinks must not block: they run on the polling goroutine and delay the
// next cycle. Panics are recovered and logged.
//
// Nil functions are silently ignored.
func WithRenderFunc(fn RenderFunc) Option {
	return func(cfg *boardConfig) error {
		if fn == nil {
			return nil
		}
		cfg.renderFuncs = append(cfg.renderFuncs, fn)
		return nil
	}
}

// WithMetrics enables or disables the Prometheus endpoint at /metrics.
// Enabled by default.
func WithMetrics(enabled bool) Option {
	return func(cfg *boardConfig) error {
		cfg.metricsEnabled = enabled
		return nil
	}
}
