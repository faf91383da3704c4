package minionboard

import (
	"time"

	"github.com/jpalmerr/minionboard/internal/poller"
)

// ErrFetchFailed is wrapped by every failed poll cycle: transport errors,
// timeouts, non-2xx responses and malformed bodies are not distinguished.
var ErrFetchFailed = poller.ErrFetchFailed

// Field names as reported by the stats endpoint.
const (
	FieldActiveJobs      = "active_jobs"
	FieldActiveLocks     = "active_locks"
	FieldFailedJobs      = "failed_jobs"
	FieldFinishedJobs    = "finished_jobs"
	FieldInactiveJobs    = "inactive_jobs"
	FieldActiveWorkers   = "active_workers"
	FieldInactiveWorkers = "inactive_workers"
	FieldDelayedJobs     = "delayed_jobs"
	FieldEnqueuedJobs    = "enqueued_jobs"
	FieldUptime          = "uptime"
)

// Stats holds the queue and worker counters returned by the stats endpoint.
//
// Every field is a pointer. A nil field was not present in the response;
// that is not an error, and render sinks should leave such a field blank.
type Stats struct {
	ActiveJobs      *int64
	ActiveLocks     *int64
	FailedJobs      *int64
	FinishedJobs    *int64
	InactiveJobs    *int64
	ActiveWorkers   *int64
	InactiveWorkers *int64

	// DelayedJobs, EnqueuedJobs and Uptime are reported by newer queue
	// backends and are usually absent. Uptime is in seconds and may carry a
	// fractional part.
	DelayedJobs  *int64
	EnqueuedJobs *int64
	Uptime       *float64
}

// Workers returns active_workers + inactive_workers. ok is false unless
// both fields are present.
func (s Stats) Workers() (n int64, ok bool) {
	if s.ActiveWorkers == nil || s.InactiveWorkers == nil {
		return 0, false
	}
	return *s.ActiveWorkers + *s.InactiveWorkers, true
}

// Each calls fn for every counter present in s, in a stable order. Uptime is
// not a counter and is not visited.
func (s Stats) Each(fn func(field string, value int64)) {
	fields := []struct {
		name  string
		value *int64
	}{
		{FieldActiveJobs, s.ActiveJobs},
		{FieldActiveLocks, s.ActiveLocks},
		{FieldFailedJobs, s.FailedJobs},
		{FieldFinishedJobs, s.FinishedJobs},
		{FieldInactiveJobs, s.InactiveJobs},
		{FieldActiveWorkers, s.ActiveWorkers},
		{FieldInactiveWorkers, s.InactiveWorkers},
		{FieldDelayedJobs, s.DelayedJobs},
		{FieldEnqueuedJobs, s.EnqueuedJobs},
	}
	for _, f := range fields {
		if f.value != nil {
			fn(f.name, *f.value)
		}
	}
}

// RenderFunc receives every successfully decoded [Stats] payload.
//
// It is called on the polling goroutine, once per successful cycle and
// never for a failed one. Panics are recovered and logged.
type RenderFunc func(Stats)

// CycleResult describes one completed poll cycle, successful or not.
type CycleResult struct {
	// Stats is the decoded payload. Zero value when Err is set.
	Stats Stats

	// StatusCode is the HTTP status code, zero if no response was received.
	StatusCode int

	// Latency is the time taken by the request.
	Latency time.Duration

	// StartedAt is when the request was issued.
	StartedAt time.Time

	// Err wraps [ErrFetchFailed] when the cycle failed.
	Err error
}

// OK reports whether the cycle produced a payload.
func (r CycleResult) OK() bool {
	return r.Err == nil
}

// statsFromPayload converts the poller's payload to the public type.
// Pointers are copied so callers cannot alias the poller's values.
func statsFromPayload(p poller.Payload) Stats {
	return Stats{
		ActiveJobs:      copyCount(p.ActiveJobs),
		ActiveLocks:     copyCount(p.ActiveLocks),
		FailedJobs:      copyCount(p.FailedJobs),
		FinishedJobs:    copyCount(p.FinishedJobs),
		InactiveJobs:    copyCount(p.InactiveJobs),
		ActiveWorkers:   copyCount(p.ActiveWorkers),
		InactiveWorkers: copyCount(p.InactiveWorkers),
		DelayedJobs:     copyCount(p.DelayedJobs),
		EnqueuedJobs:    copyCount(p.EnqueuedJobs),
		Uptime:          copySeconds(p.Uptime),
	}
}

// cycleResultFromCycle converts an internal cycle to the public type.
func cycleResultFromCycle(c poller.Cycle) CycleResult {
	r := CycleResult{
		StatusCode: c.StatusCode,
		Latency:    c.Latency,
		StartedAt:  c.StartedAt,
		Err:        c.Err,
	}
	if c.OK() {
		r.Stats = statsFromPayload(c.Payload)
	}
	return r
}

func copyCount(v *int64) *int64 {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func copySeconds(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}
