package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/minionboard"
	"github.com/jpalmerr/minionboard/config"
)

// watchCmd redraws the stats table in the terminal after every poll.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show live stats in the terminal",
	Long: `Poll the stats endpoint and redraw a table in the terminal after every
successful poll. Failed polls keep the last table on screen and are retried
after the poll interval.

Example:
  minionboard watch --url http://localhost:3000/minion/stats
  minionboard watch -c config.yaml`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addSourceFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	title := cfg.Title
	if title == "" {
		title = cfg.StatsURL
	}
	term := minionboard.NewTerminal(cmd.OutOrStdout(), title)

	// the table owns the terminal; only warnings reach stderr
	opts := append(config.PollOptions(cfg),
		minionboard.WithPollLogger(newLogger(slog.LevelWarn)),
		minionboard.WithCycleHook(term.Redraw),
	)
	p, err := minionboard.NewPoller(cfg.StatsURL, opts...)
	if err != nil {
		return fmt.Errorf("failed to create poller: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return p.Run(ctx, nil)
}
