// Standalone mock Minion stats server for testing the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/minionboard serve --url http://localhost:9999/minion/stats
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/jpalmerr/minionboard/example/internal/mockminion"
)

func main() {
	fmt.Println("Mock Minion stats server starting on :9999")
	fmt.Println("Stats at http://localhost:9999/minion/stats (about 5% of requests fail)")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	mux := http.NewServeMux()
	mux.Handle("GET /minion/stats", mockminion.New())

	if err := http.ListenAndServe(":9999", mux); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
