package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/minionboard/config"
)

// addSourceFlags registers the flags selecting where stats come from.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "path to config file")
	cmd.Flags().StringP("url", "u", "", "stats endpoint URL (overrides stats_url from the config file)")
}

// loadConfig resolves the configuration from --config and --url. At least
// one of them is required.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	statsURL, _ := cmd.Flags().GetString("url")

	switch {
	case configFile != "":
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if statsURL != "" {
			cfg.StatsURL = statsURL
		}
		return cfg, nil
	case statsURL != "":
		cfg, err := config.FromURL(statsURL)
		if err != nil {
			return nil, fmt.Errorf("invalid --url: %w", err)
		}
		return cfg, nil
	default:
		return nil, errors.New("either --config or --url is required")
	}
}

// newLogger creates a JSON logger for CLI use.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
