// Package server provides the HTTP server for the minionboard dashboard and API.
//
// This package is internal to minionboard and handles all HTTP concerns:
//
//   - Dashboard serving: Serves the embedded HTML/CSS/JS dashboard at "/"
//   - REST API: JSON endpoint at "/api/stats" for the latest counters
//   - Server-Sent Events: Live counter updates at "/api/sse"
//   - Metrics: Prometheus exposition at "/metrics" when enabled
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
package server
