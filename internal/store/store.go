package store

import "time"

// Snapshot is the stored copy of the most recent successful stats payload.
//
// Count fields are pointers: a field the stats endpoint did not report is
// nil and omitted from the JSON encoding, so the dashboard leaves it blank.
type Snapshot struct {
	ActiveJobs      *int64   `json:"active_jobs,omitempty"`
	ActiveLocks     *int64   `json:"active_locks,omitempty"`
	FailedJobs      *int64   `json:"failed_jobs,omitempty"`
	FinishedJobs    *int64   `json:"finished_jobs,omitempty"`
	InactiveJobs    *int64   `json:"inactive_jobs,omitempty"`
	ActiveWorkers   *int64   `json:"active_workers,omitempty"`
	InactiveWorkers *int64   `json:"inactive_workers,omitempty"`
	DelayedJobs     *int64   `json:"delayed_jobs,omitempty"`
	EnqueuedJobs    *int64   `json:"enqueued_jobs,omitempty"`
	Uptime          *float64 `json:"uptime,omitempty"`

	// Workers is active_workers + inactive_workers, nil unless both are known.
	Workers *int64 `json:"workers,omitempty"`

	// UpdatedAt is when the payload was received.
	UpdatedAt time.Time `json:"updated_at"`

	// LatencyMs is the request latency of the poll that produced the payload.
	LatencyMs int64 `json:"latency_ms"`
}

// Store defines the interface for storing and subscribing to snapshots.
//
// Store implementations must be safe for concurrent access.
type Store interface {
	// Update replaces the latest snapshot and notifies all subscribers.
	Update(snap Snapshot)

	// Latest returns the most recent snapshot. ok is false until the first
	// Update.
	Latest() (snap Snapshot, ok bool)

	// Subscribe returns a channel that receives snapshot updates.
	// The returned channel has a buffer; slow consumers may miss updates.
	// Caller must call Unsubscribe when done to prevent resource leaks.
	Subscribe() <-chan Snapshot

	// Unsubscribe removes a subscription and closes the channel.
	// Safe to call with a channel that was already unsubscribed.
	Unsubscribe(ch <-chan Snapshot)
}
