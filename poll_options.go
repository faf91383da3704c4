package minionboard

import (
	"errors"
	"log/slog"
	"time"
)

// pollConfig holds mutable state during Poller construction.
type pollConfig struct {
	headers  map[string]string
	timeout  time.Duration
	interval time.Duration
	logger   *slog.Logger
	hooks    []func(CycleResult)
}

// PollOption configures a [Poller] during construction.
//
// Built-in options: [WithInterval], [WithTimeout], [WithHeaders],
// [WithPollLogger], [WithCycleHook].
type PollOption func(*pollConfig) error

// WithInterval sets the delay between the end of one cycle and the start of
// the next. The same delay follows successes and failures; there is no
// backoff. Defaults to 3 seconds.
//
// Returns an error if the duration is zero or negative, or exceeds one hour.
func WithInterval(d time.Duration) PollOption {
	return func(cfg *pollConfig) error {
		if d <= 0 {
			return errors.New("interval must be positive")
		}
		if d > time.Hour {
			return errors.New("interval must not exceed 1 hour")
		}
		cfg.interval = d
		return nil
	}
}

// WithTimeout bounds each stats request. A request that exceeds it is a
// failed cycle. Defaults to 10 seconds.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) PollOption {
	return func(cfg *pollConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithHeaders adds HTTP headers to every stats request, typically for
// authentication.
//
// Accepts variadic key-value pairs. The number of arguments must be even.
//
// Example:
//
//	minionboard.WithHeaders("Authorization", "Bearer token123")
func WithHeaders(keyValues ...string) PollOption {
	return func(cfg *pollConfig) error {
		if len(keyValues)%2 != 0 {
			return errors.New("WithHeaders requires an even number of arguments (key-value pairs)")
		}
		for i := 0; i < len(keyValues); i += 2 {
			cfg.headers[keyValues[i]] = keyValues[i+1]
		}
		return nil
	}
}

// WithPollLogger sets the logger used for cycle and panic logs.
// Defaults to [slog.Default].
//
// Returns an error if the logger is nil.
func WithPollLogger(logger *slog.Logger) PollOption {
	return func(cfg *pollConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithCycleHook registers fn to observe every completed cycle, successful or
// failed. Hooks run on the polling goroutine before the render function, in
// registration order. Can be called multiple times.
//
// Returns an error if fn is nil.
func WithCycleHook(fn func(CycleResult)) PollOption {
	return func(cfg *pollConfig) error {
		if fn == nil {
			return errors.New("cycle hook cannot be nil")
		}
		cfg.hooks = append(cfg.hooks, fn)
		return nil
	}
}
