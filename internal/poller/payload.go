package poller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrFetchFailed is the single failure kind of a poll cycle. It wraps
// transport errors, non-2xx responses and malformed bodies alike.
var ErrFetchFailed = errors.New("stats fetch failed")

// Payload is the decoded statistics body.
//
// Every field is a pointer so that a field missing from the response can be
// told apart from a zero count. Missing fields are not an error.
type Payload struct {
	ActiveJobs      *int64
	ActiveLocks     *int64
	FailedJobs      *int64
	FinishedJobs    *int64
	InactiveJobs    *int64
	ActiveWorkers   *int64
	InactiveWorkers *int64
	DelayedJobs     *int64
	EnqueuedJobs    *int64

	// Uptime is in seconds. Pg backends report it with a fractional part.
	Uptime *float64
}

// Decode parses body as a statistics payload.
//
// The body must be a JSON object. Unknown keys are ignored and null reads as
// absent. The core counters must be whole numbers ("3" or "3.0"); anything
// else is an error. delayed_jobs, enqueued_jobs and uptime are dropped when
// they cannot be read.
func Decode(body []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Payload{}, errors.New("response body is not a JSON object")
	}

	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return Payload{}, fmt.Errorf("failed to decode stats: %w", err)
	}

	var p Payload
	counters := []struct {
		name     string
		dst      **int64
		optional bool
	}{
		{"active_jobs", &p.ActiveJobs, false},
		{"active_locks", &p.ActiveLocks, false},
		{"failed_jobs", &p.FailedJobs, false},
		{"finished_jobs", &p.FinishedJobs, false},
		{"inactive_jobs", &p.InactiveJobs, false},
		{"active_workers", &p.ActiveWorkers, false},
		{"inactive_workers", &p.InactiveWorkers, false},
		{"delayed_jobs", &p.DelayedJobs, true},
		{"enqueued_jobs", &p.EnqueuedJobs, true},
	}
	for _, c := range counters {
		v, ok := raw[c.name]
		if !ok || v == nil {
			continue
		}
		n, err := count(v)
		if err != nil {
			if c.optional {
				continue
			}
			return Payload{}, fmt.Errorf("failed to decode stats: %s: %w", c.name, err)
		}
		*c.dst = &n
	}

	if v, ok := raw["uptime"].(json.Number); ok {
		if f, err := v.Float64(); err == nil && !math.IsInf(f, 0) {
			p.Uptime = &f
		}
	}
	return p, nil
}

// count reads v as a whole number.
func count(v any) (int64, error) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("got %T, want a number", v)
	}
	if n, err := num.Int64(); err == nil {
		return n, nil
	}
	f, err := num.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%s is not a whole number", num)
	}
	return int64(f), nil
}
