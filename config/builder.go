package config

import (
	"sort"

	"github.com/jpalmerr/minionboard"
)

// PollOptions converts parsed configuration into SDK poll options.
func PollOptions(cfg *Config) []minionboard.PollOption {
	opts := []minionboard.PollOption{
		minionboard.WithInterval(cfg.PollInterval.Duration()),
	}

	if cfg.Timeout != 0 {
		opts = append(opts, minionboard.WithTimeout(cfg.Timeout.Duration()))
	}

	if len(cfg.Headers) > 0 {
		opts = append(opts, minionboard.WithHeaders(mapToKeyValuePairs(cfg.Headers)...))
	}

	return opts
}

// BoardOptions converts parsed configuration into SDK board options.
// The returned options do not set a logger.
func BoardOptions(cfg *Config) []minionboard.Option {
	opts := []minionboard.Option{
		minionboard.WithStatsURL(cfg.StatsURL),
		minionboard.WithPort(cfg.Port),
		minionboard.WithMetrics(cfg.MetricsEnabled()),
		minionboard.WithPollOptions(PollOptions(cfg)...),
	}

	if cfg.Title != "" {
		opts = append(opts, minionboard.WithTitle(cfg.Title))
	}

	return opts
}

// mapToKeyValuePairs converts a map to a sorted slice of key-value pairs.
func mapToKeyValuePairs(m map[string]string) []string {
	// sort keys for deterministic ordering
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(m)*2)
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return pairs
}
