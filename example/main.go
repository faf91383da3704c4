package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/minionboard"
	"github.com/jpalmerr/minionboard/example/internal/mockminion"
)

func main() {
	// start the mock stats endpoint
	mux := http.NewServeMux()
	mux.Handle("GET /minion/stats", mockminion.New())
	go func() {
		if err := http.ListenAndServe(":9999", mux); err != nil {
			slog.Error("mock server error", "error", err)
			os.Exit(1)
		}
	}()
	time.Sleep(100 * time.Millisecond)

	b, err := minionboard.New(
		minionboard.WithStatsURL("http://localhost:9999/minion/stats"),
		minionboard.WithPollOptions(minionboard.WithInterval(2*time.Second)),
		minionboard.WithPort(8080),
		minionboard.WithTitle("Minion Demo"),
		minionboard.WithRenderFunc(func(s minionboard.Stats) {
			if s.FailedJobs != nil && *s.FailedJobs%10 == 0 {
				slog.Warn("failed jobs reached a multiple of ten", "failed_jobs", *s.FailedJobs)
			}
		}),
	)
	if err != nil {
		slog.Error("failed to create board", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   minionboard Demo                                    ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080 in your browser          ║")
	fmt.Println("  ║   Metrics at http://localhost:8080/metrics            ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Mock queue polled every 2s, ~5% of polls fail       ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Start(ctx); err != nil {
		slog.Error("minionboard error", "error", err)
		os.Exit(1)
	}
}
