package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/minionboard"
	"github.com/jpalmerr/minionboard/config"
)

// statsCmd fetches the stats once and prints them.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Fetch and print the stats once",
	Long: `Fetch the stats endpoint once and print the counters as a table, or as
JSON with --json. Exits non-zero if the fetch fails.

Example:
  minionboard stats --url http://localhost:3000/minion/stats
  minionboard stats -c config.yaml --json`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	addSourceFlags(statsCmd)
	statsCmd.Flags().Bool("json", false, "print the raw counters as JSON")
}

// statsJSON is the --json output. Absent fields are omitted.
type statsJSON struct {
	Stats   map[string]int64 `json:"stats"`
	Workers *int64           `json:"workers,omitempty"`
	Uptime  *float64         `json:"uptime,omitempty"`
	Latency int64            `json:"latency_ms"`
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := append(config.PollOptions(cfg), minionboard.WithPollLogger(newLogger(slog.LevelWarn)))
	p, err := minionboard.NewPoller(cfg.StatsURL, opts...)
	if err != nil {
		return fmt.Errorf("failed to create poller: %w", err)
	}

	r := p.Once(cmd.Context())
	if !r.OK() {
		return r.Err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		out := statsJSON{
			Stats:   make(map[string]int64),
			Uptime:  r.Stats.Uptime,
			Latency: r.Latency.Milliseconds(),
		}
		r.Stats.Each(func(field string, value int64) {
			out.Stats[field] = value
		})
		if n, ok := r.Stats.Workers(); ok {
			out.Workers = &n
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	return minionboard.NewTerminal(cmd.OutOrStdout(), "").Print(r)
}
