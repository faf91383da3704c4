// Package minionboard polls a Minion job queue's stats endpoint and renders
// the counters it reports.
//
// The core is [Poll]: a sequential loop that fetches the stats URL, hands
// every successfully decoded [Stats] payload to a render function, and
// retries forever on a fixed interval. Failures never reach the caller.
//
// # Quick Start
//
// Poll and print until interrupted:
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	minionboard.Poll(ctx, "http://localhost:3000/minion/stats", func(s minionboard.Stats) {
//	    fmt.Println(*s.ActiveJobs)
//	})
//
// Or serve the live dashboard:
//
//	b, _ := minionboard.New(minionboard.WithStatsURL("http://localhost:3000/minion/stats"))
//	b.Start(ctx) // blocks until ctx is done
//
// # Polling
//
// Each cycle issues one GET request and waits for it to resolve. A 2xx
// response whose body is a JSON object with whole-number counters is a success
// and is rendered; anything else is a failure and is not. Either way the
// next cycle starts [WithInterval] later (3 seconds by default), so at most
// one request is in flight and the effective period is the interval plus
// the request latency.
//
// Fields missing from the payload are nil in [Stats]. That is not an error.
//
// # Architecture
//
// The package consists of several internal packages (under internal/):
//
//   - internal/poller: HTTP client, payload decoding and the poll loop
//   - internal/store: In-memory snapshot storage with pub/sub
//   - internal/server: HTTP server with REST API and Server-Sent Events
//   - internal/metrics: Prometheus collectors for poll outcomes and counters
//   - internal/render: Terminal table renderer
//   - internal/humanize: Relative time and duration formatting
//   - dashboard: Embedded web UI assets
//
// The internal packages are not part of the public API and may change
// without notice.
package minionboard
