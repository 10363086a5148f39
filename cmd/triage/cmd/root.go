package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/symplify/triage/internal/config"
	"github.com/symplify/triage/internal/inbox"
	"github.com/symplify/triage/internal/notify"
	"github.com/symplify/triage/internal/refresh"
	"github.com/symplify/triage/internal/source"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Clinical message triage engine",
	Long: `triage scores, routes, and tracks clinical emails and notifications.

Messages are pulled from configured sources, run through a keyword
scorer, routed into folders, and held in an in-memory inbox that can be
browsed from the terminal, served over HTTP, or queried over MCP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.triage/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("triage %s\n", version)
		},
	})
}

// Execute runs the root command with a background context.
// Prefer ExecuteContext for signal-aware execution.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context,
// enabling graceful shutdown when the context is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// buildSources assembles the email and notification sources from the
// loaded config. With nothing configured the fixtures are used, so the
// tool always has something to show.
func buildSources() (source.EmailSource, source.NotificationSource) {
	var emails source.MultiEmail
	var notifications source.NotificationSource = source.NoNotifications{}

	if cfg.Sources.Fixtures {
		fx := source.NewFixtureSource()
		emails = append(emails, fx)
		notifications = fx
	}
	for _, dir := range cfg.Sources.EMLDirs {
		emails = append(emails, source.NewEMLDir(dir))
	}
	if len(emails) == 0 {
		fx := source.NewFixtureSource()
		emails = append(emails, fx)
		notifications = fx
	}
	return emails, notifications
}

// loadStores builds the stores and performs one synchronous load.
func loadStores(ctx context.Context) (*inbox.Store, *notify.Store, *refresh.Refresher, error) {
	emails, notifications := buildSources()

	ib := inbox.NewStore()
	nf := notify.NewStore()

	ref := refresh.New(emails, notifications, ib, nf).WithLogger(logger)
	if err := ref.RunOnce(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("initial load: %w", err)
	}
	return ib, nf, ref, nil
}
