package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/citygrid/eventsim/config"
	"github.com/citygrid/eventsim/infopage"
	"github.com/citygrid/eventsim/internal/server"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// serveCmd starts the SSE test server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSE test server",
	Long: `Start the eventsim SSE test server.

The server will:
  - Stream randomized canned events on /events every 3-5 seconds
  - Serve a static help page on /
  - Expose /healthz and Prometheus /metrics

The config file is optional; without one the server listens on port 3000
with the default 3-5 second cadence. The server runs until interrupted
(Ctrl+C) or receives SIGTERM.

Example:
  eventsim serve
  eventsim serve -c eventsim.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file (optional)")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg := config.Default()
	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Info("config loaded", "path", configFile)
	}

	srv := server.NewServer(
		cfg.Port,
		infopage.Assets,
		cfg.Title,
		cfg.MinDelay.Duration(),
		cfg.MaxDelay.Duration(),
		logger,
	)

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	printBanner(cfg.Port)
	logger.Info("server started",
		"port", cfg.Port,
		"min_delay", cfg.MinDelay.Duration().String(),
		"max_delay", cfg.MaxDelay.Duration().String(),
	)

	// wait for a signal, then for the graceful shutdown to finish
	<-ctx.Done()

	select {
	case <-srv.Done():
		logger.Info("shutdown complete")
		return nil
	case <-time.After(shutdownTimeout):
		logger.Warn("shutdown timed out",
			"timeout", shutdownTimeout.String(),
			"action", "forcing exit",
		)
		return nil
	}
}

// printBanner writes the human-facing startup summary to stdout. Structured
// logs go to stderr; the banner is what someone running the simulator by
// hand actually reads.
func printBanner(port int) {
	fmt.Println("============================================================")
	fmt.Println("  City Dashboard SSE Test Server")
	fmt.Println("============================================================")
	fmt.Printf("  Server: http://localhost:%d\n", port)
	fmt.Printf("  Events: http://localhost:%d/events\n", port)
	fmt.Println("============================================================")
	fmt.Println()
	fmt.Println("To connect the dashboard:")
	fmt.Printf("  SSE_URL=http://localhost:%d/events cargo run\n", port)
	fmt.Println()
	fmt.Println("Press Ctrl+C to stop")
}
