// Package mockminion simulates a Minion stats endpoint for the examples.
//
// Jobs are enqueued at random, picked up by a fixed pool of workers, and
// finish or fail a few ticks later. A small share of requests fail with a
// 500 so the dashboard's retry path is visible.
package mockminion

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

const (
	workers     = 4
	failureRate = 0.05
)

// Queue is the simulated job queue behind the handler.
type Queue struct {
	mu       sync.Mutex
	rng      *rand.Rand
	started  time.Time
	lastTick time.Time

	inactive int64
	active   int64
	locks    int64
	finished int64
	failed   int64
	delayed  int64
}

// New creates a queue with a little backlog.
func New() *Queue {
	now := time.Now()
	return &Queue{
		rng:      rand.New(rand.NewSource(now.UnixNano())),
		started:  now,
		lastTick: now,
		inactive: 12,
		finished: 1480,
		failed:   3,
	}
}

// advance moves the simulation forward one step per elapsed second.
func (q *Queue) advance(now time.Time) {
	for ; q.lastTick.Add(time.Second).Before(now); q.lastTick = q.lastTick.Add(time.Second) {
		q.inactive += int64(q.rng.Intn(4))

		// free workers pick up pending jobs
		for q.active < workers && q.inactive > 0 {
			q.inactive--
			q.active++
		}

		// running jobs complete
		for i := q.active; i > 0; i-- {
			if q.rng.Intn(3) != 0 {
				continue
			}
			q.active--
			if q.rng.Intn(40) == 0 {
				q.failed++
			} else {
				q.finished++
			}
		}

		q.locks = int64(q.rng.Intn(3))
		q.delayed = int64(q.rng.Intn(5))
	}
}

// Stats returns the current counters in the stats endpoint's JSON shape.
// Counters are int64; uptime is fractional seconds as Pg backends report it.
func (q *Queue) Stats(now time.Time) map[string]any {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.advance(now)

	stats := map[string]any{
		"active_jobs":      q.active,
		"inactive_jobs":    q.inactive,
		"failed_jobs":      q.failed,
		"finished_jobs":    q.finished,
		"delayed_jobs":     q.delayed,
		"active_workers":   min(q.active, workers),
		"inactive_workers": workers - min(q.active, workers),
		"uptime":           now.Sub(q.started).Seconds(),
	}
	// older backends do not report locks
	if q.rng.Intn(10) != 0 {
		stats["active_locks"] = q.locks
	}
	return stats
}

// fail reports whether this request should fail.
func (q *Queue) fail() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.rng.Float64() < failureRate
}

// ServeHTTP serves the stats as JSON, failing a small share of requests.
func (q *Queue) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// simulate small latency variance
	time.Sleep(time.Duration(20+q.jitter(80)) * time.Millisecond)

	if q.fail() {
		slog.Info("simulated stats failure")
		http.Error(w, "simulated failure", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(q.Stats(time.Now()))
}

func (q *Queue) jitter(n int) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.rng.Intn(n)
}
