package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/chatlogger/pkg/chatlog/retention"
	"mercator-hq/chatlogger/pkg/chatlog/service"
	"mercator-hq/chatlogger/pkg/cli"
	"mercator-hq/chatlogger/pkg/config"
	"mercator-hq/chatlogger/pkg/telemetry/health"
	"mercator-hq/chatlogger/pkg/telemetry/metrics"
	"mercator-hq/chatlogger/pkg/telemetry/tracing"
)

var runFlags struct {
	logLevel string
	watch    bool
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Log chat events and run the daily purge",
	Long: `Start the chat logger with the specified configuration.

Chat events are read from the configured bus (stdin or Redis) and written to
the configured table. When purge.max_age is positive, messages older than
that are deleted every day at purge.hour:purge.minute in host.time_zone.

With telemetry.metrics.enabled, the metrics listener also serves /health,
/ready and /version.

The configuration file is watched and re-applied on change; SIGHUP forces a
reload. Table name, max age, purge time and time zone take effect on reload.
Database and bus settings need a restart.

Examples:
  # Log events piped from the host
  host-bot --emit-chat | chatlogger run

  # Subscribe to Redis instead (bus.source: redis)
  chatlogger run --config /etc/chatlogger/chatlogger.yaml

  # Validate config and open the store without consuming events
  chatlogger run --dry-run`,
	RunE: runLogger,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.watch, "watch", true, "reload configuration when the file changes")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config and open the store, then exit")
}

func runLogger(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if err := setupLogging(&cfg.Telemetry.Logging); err != nil {
		return err
	}

	store, err := openStore(&cfg.Database)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer store.Close()

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewConfigError("telemetry.tracing", err.Error())
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()

	scheduler := retention.NewCronScheduler()
	svc := service.New(store, scheduler,
		service.WithMetrics(collector),
		service.WithTracerProvider(tracer.Provider()),
	)

	ctx := cli.SetupSignalHandler()
	if err := svc.Reload(ctx, serviceConfig(cfg)); err != nil {
		return cli.NewCommandError("run", err)
	}
	defer svc.Close()

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Table %q ready (%s)\n", svc.Table(), cfg.Database.Backend)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", svc.Policy())
		return nil
	}

	scheduler.Start()
	defer scheduler.Stop()

	source, closeSource, err := newSource(&cfg.Bus)
	if err != nil {
		return err
	}
	defer closeSource()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	apply := func(next *config.Config) error {
		warnRestartOnly(cfg, next)
		return svc.Reload(ctx, serviceConfig(next))
	}

	if collector != nil {
		checker := health.New(2 * time.Second)
		checker.Register("store", svc.CheckStore)
		checker.Register("retention", svc.CheckRetention)
		info := health.BuildInfo{Version: Version, Commit: GitCommit, BuildDate: BuildDate}

		wg.Add(1)
		go func() {
			defer wg.Done()
			m := cfg.Telemetry.Metrics
			err := collector.Serve(ctx, m.ListenAddress, m.Path, func(mux *http.ServeMux) {
				health.Mount(mux, checker, info)
			})
			if err != nil {
				slog.Error("metrics server failed", "error", err)
			}
		}()
	}

	if runFlags.watch {
		watcher, err := config.NewFileWatcher(cfgFile, 0, nil)
		if err != nil {
			slog.Warn("configuration watcher unavailable", "error", err)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := watcher.Watch(ctx, apply); err != nil {
					slog.Error("configuration watcher failed", "error", err)
				}
			}()
			defer watcher.Stop()
		}
	}

	reload, stopReload := cli.NotifyReload()
	defer stopReload()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-reload:
				slog.Info("reload requested by signal")
				next, err := config.ReloadConfig(cfgFile)
				if err != nil {
					slog.Error("configuration reload rejected, keeping previous configuration", "error", err)
					continue
				}
				if err := apply(next); err != nil {
					slog.Error("applying reloaded configuration failed", "error", err)
				}
			}
		}
	}()

	slog.Info("chat logger started",
		"version", Version,
		"table", svc.Table(),
		"backend", cfg.Database.Backend,
		"bus", cfg.Bus.Source,
	)

	runErr := source.Run(ctx, svc.HandleEvent)
	cancel()
	wg.Wait()

	if runErr != nil {
		return cli.NewCommandError("run", runErr)
	}
	slog.Info("chat logger stopped")
	return nil
}

// warnRestartOnly logs settings that changed but are only read at startup.
func warnRestartOnly(prev, next *config.Config) {
	if prev.Database.Backend != next.Database.Backend ||
		prev.Database.SQLite.Path != next.Database.SQLite.Path ||
		prev.Database.MySQL.DSN != next.Database.MySQL.DSN {
		slog.Warn("database settings changed; restart to apply")
	}
	if prev.Bus != next.Bus {
		slog.Warn("bus settings changed; restart to apply")
	}
}
