// Package main is the entry point for the eventsim CLI.
//
// eventsim is a throwaway SSE test server for the city dashboard: it streams
// randomly chosen canned security events at randomized intervals so the
// dashboard can be exercised without the real backend.
//
// Usage:
//
//	eventsim serve                     # Start on port 3000 with defaults
//	eventsim serve -c eventsim.yaml    # Start with a config file
//	eventsim validate -c eventsim.yaml # Validate configuration
//	eventsim version                   # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "eventsim",
	Short: "SSE test server for the city dashboard",
	Long: `eventsim is a local SSE test server for the city dashboard.

It streams randomly chosen canned events (barrier breaches, SCADA
compromises, emergency stops, ...) every 3-5 seconds over /events, plus a
static help page on /.

Quick start:
  1. Run: eventsim serve
  2. Point the dashboard at it: SSE_URL=http://localhost:3000/events cargo run
  3. Or watch raw frames: curl -N http://localhost:3000/events`,
	// No Run/RunE means this just shows help when called without subcommands
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
	Long:  `Print the version, commit hash, and build date of this eventsim binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("eventsim %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
