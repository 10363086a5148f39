package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/symplify/triage/internal/api"
	"github.com/symplify/triage/internal/refresh"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run triage as a daemon with the HTTP API",
	Long: `Run triage as a long-running daemon serving the inbox over HTTP.

The daemon runs in the foreground and performs:
  - HTTP API server on configured port (default: 8080)
  - Scheduled source refreshes (default: every 5 minutes)

Configure the schedule in config.toml:
  [refresh]
  schedule = "*/5 * * * *"
  enabled = true

Cron format: minute hour day-of-month month day-of-week
  Examples:
    */5 * * * *   = Every 5 minutes
    0 * * * *     = On the hour
    0 7 * * 1-5   = 7:00 AM on weekdays

Use Ctrl+C to stop the daemon gracefully.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.Refresh.Enabled {
		if err := refresh.ValidateCronExpr(cfg.Refresh.Schedule); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	ib, nf, ref, err := loadStores(ctx)
	if err != nil {
		return err
	}

	if cfg.Refresh.Enabled {
		if err := ref.Schedule(cfg.Refresh.Schedule); err != nil {
			return err
		}
		ref.Start()
		defer ref.Stop()
	}

	server := api.NewServer(cfg, ib, nf, ref, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("daemon started",
		"addr", fmt.Sprintf("%s:%d", cfg.Server.BindAddr, cfg.Server.APIPort),
		"emails", ib.Len(),
		"notifications", nf.Len())

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return ctx.Err()
}
