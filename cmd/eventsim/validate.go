package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/citygrid/eventsim/config"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate an eventsim configuration file without starting the server.

This command parses the YAML and validates all fields.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  eventsim validate -c eventsim.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Port:  %d\n", cfg.Port)
	fmt.Printf("  Delay: %s - %s\n", cfg.MinDelay.Duration(), cfg.MaxDelay.Duration())

	return nil
}
