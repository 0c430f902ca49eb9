package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tamewtf/relay/pkg/audit"
	"tamewtf/relay/pkg/cli"
	"tamewtf/relay/pkg/config"
	"tamewtf/relay/pkg/relay/handlers"
	"tamewtf/relay/pkg/server"
	"tamewtf/relay/pkg/telemetry/logging"
	"tamewtf/relay/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	watchConfig   bool
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the relay server",
	Long: `Start the relay server with the specified configuration.

The server listens on the configured address and proxies requests to the
LastFM and Discord APIs, applying rate limiting, timeouts, security
headers, and CORS on the way.

Examples:
  # Start with defaults
  relay run

  # Start with a configuration file
  relay run --config /etc/relay/config.yaml

  # Override listen address
  relay run --listen 0.0.0.0:3001

  # Reload credentials when the config file changes
  relay run --config /etc/relay/config.yaml --watch

  # Validate config without starting
  relay run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.watchConfig, "watch", false, "reload configuration when the file changes")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	config.SetConfig(cfg)

	logger, err := logging.New(cfg.Telemetry.Logging, os.Stdout)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	handlers.Version = Version
	printBanner(cfg)

	// Metrics collector
	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	// Audit store and retention pruner
	var auditStore audit.Store
	var pruner *audit.Pruner
	if cfg.Audit.Enabled {
		logger.Info("initializing audit store", "backend", cfg.Audit.Backend)

		switch cfg.Audit.Backend {
		case "sqlite":
			store, err := audit.NewSQLiteStore(&audit.SQLiteConfig{Path: cfg.Audit.SQLitePath})
			if err != nil {
				return cli.NewCommandError("run", fmt.Errorf("failed to open audit store: %w", err))
			}
			auditStore = store
		case "memory":
			auditStore = audit.NewMemoryStore(cfg.Audit.MaxEntries)
		default:
			return cli.NewConfigError("audit.backend",
				fmt.Sprintf("unsupported backend: %s", cfg.Audit.Backend))
		}
		defer auditStore.Close()

		if cfg.Audit.PruneSchedule != "" {
			pruner = audit.NewPruner(auditStore, cfg.Audit.RetentionDays,
				cfg.Audit.PruneSchedule, logger.Slog())
			if err := pruner.Start(context.Background()); err != nil {
				logger.Warn("failed to start audit pruner", "error", err)
			} else {
				defer pruner.Stop()
			}
		}

		fmt.Println("✓ Audit store initialized")
	}

	// Config file watcher for credential hot reload
	if runFlags.watchConfig && cfgFile != "" {
		stopWatcher, err := startConfigWatcher(cfgFile, logger)
		if err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		} else {
			defer stopWatcher()
			fmt.Println("✓ Watching configuration for changes")
		}
	}

	srv := server.NewServer(cfg, server.Options{
		Logger:     logger,
		Collector:  collector,
		AuditStore: auditStore,
	})

	// Cancelled on SIGINT/SIGTERM; Start shuts down when it fires.
	ctx := cli.SetupSignalHandler()

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errChan <- err
		}
		close(errChan)
	}()

	fmt.Println()
	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n",
			cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Start returns after graceful shutdown; wait for it.
	if err := <-errChan; err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Server stopped")
	return nil
}

// startConfigWatcher creates a file watcher for the config path and runs
// its watch loop in the background. The loop blocks until cancelled, so it
// must not run on the startup path. The returned function stops the
// watcher and waits for the loop to exit.
func startConfigWatcher(path string, logger *logging.Logger) (func(), error) {
	watcher, err := config.NewFileWatcher(path, logger.Slog())
	if err != nil {
		return nil, err
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	go func() {
		if err := watcher.Watch(watchCtx); err != nil {
			logger.Warn("config watcher exited", "error", err)
		}
	}()

	return func() {
		watchCancel()
		if err := watcher.Stop(); err != nil {
			logger.Warn("failed to stop config watcher", "error", err)
		}
	}, nil
}

func printBanner(cfg *config.Config) {
	fmt.Printf("relay v%s\n", Version)
	if cfgFile != "" {
		fmt.Printf("Loading configuration from: %s\n", cfgFile)
	}
	fmt.Println("✓ Configuration loaded")

	if cfg.Upstreams.LastFM.APIKey == "" {
		fmt.Println("  Warning: LastFM API key not set")
	}
	if cfg.Upstreams.Discord.BotToken == "" {
		fmt.Println("  Warning: Discord bot token not set")
	}
	if cfg.Development {
		fmt.Println("  Development mode: error details exposed in responses")
	}
}
