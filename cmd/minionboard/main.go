// Package main is the entry point for the minionboard CLI.
//
// minionboard can be run either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	minionboard serve -c config.yaml     # Start the dashboard
//	minionboard watch --url <stats-url>  # Live table in the terminal
//	minionboard stats --url <stats-url>  # Print the stats once
//	minionboard validate -c config.yaml  # Validate configuration
//	minionboard version                  # Show version info
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultEnvFile = ".env"

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "minionboard",
	Short: "A live dashboard for Minion job queue stats",
	Long: `minionboard polls a Minion stats endpoint and shows its queue and
worker counters, in a web UI with Server-Sent Events or in the terminal.

Quick start:
  1. Create a config file (minionboard.yaml)
  2. Run: minionboard serve -c minionboard.yaml
  3. Open http://localhost:8080 in your browser

Or without a config file:
  minionboard watch --url http://localhost:3000/minion/stats

Example config:
  port: 8080
  stats_url: ${MINION_URL:-http://localhost:3000}/minion/stats
  poll_interval: 3s

Variables referenced in the config are read from the environment and from
a .env file in the working directory, if present.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvFile,
	// No Run/RunE means this just shows help when called without subcommands
}

// loadEnvFile loads variables from the --env-file into the process
// environment. Variables already set are not overridden. A missing default
// file is not an error.
func loadEnvFile(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("env-file")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file") {
			return nil
		}
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this minionboard binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "minionboard %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().String("env-file", defaultEnvFile, "path to a .env file")

	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
