package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/chatlogger/pkg/chatlog/retention"
	"mercator-hq/chatlogger/pkg/chatlog/service"
	"mercator-hq/chatlogger/pkg/cli"
)

// purgeClock is the time a manual purge measures the cutoff from.
var purgeClock = time.Now

var purgeFlags struct {
	maxAge string
	output string
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete messages older than the max age now",
	Long: `Run the retention purge once, outside the daily schedule.

Messages whose message_time is older than purge.max_age are deleted from the
configured table. The purge refuses to run when the max age is 0 (keep
forever).

Examples:
  # Purge with the configured max age
  chatlogger purge

  # Purge everything older than two weeks
  chatlogger purge --max-age 2w`,
	RunE: purgeNow,
}

func init() {
	rootCmd.AddCommand(purgeCmd)

	purgeCmd.Flags().StringVar(&purgeFlags.maxAge, "max-age", "", "override purge.max_age (e.g. 30d, 2w, 6m, 1y)")
	purgeCmd.Flags().StringVarP(&purgeFlags.output, "output", "o", "text", "output format: text, json")
}

// purgeReport is the outcome of a manual purge.
type purgeReport struct {
	Table      string    `json:"table"`
	MaxAgeDays int       `json:"max_age_days"`
	Cutoff     time.Time `json:"cutoff"`
	Deleted    int64     `json:"deleted"`
}

func (r purgeReport) String() string {
	return fmt.Sprintf("✓ Deleted %d messages older than %d days from %s (before %s)",
		r.Deleted, r.MaxAgeDays, r.Table, r.Cutoff.Format(time.RFC3339))
}

func purgeNow(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(purgeFlags.output)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	if err := setupLogging(&cfg.Telemetry.Logging); err != nil {
		return err
	}
	if purgeFlags.maxAge != "" {
		cfg.Purge.MaxAge = purgeFlags.maxAge
	}

	store, err := openStore(&cfg.Database)
	if err != nil {
		return cli.NewCommandError("purge", err)
	}
	defer store.Close()

	// The scheduler is never started; it only satisfies the service. The
	// clock is pinned so the reported cutoff is the one the delete used.
	now := purgeClock()
	svc := service.New(store, retention.NewCronScheduler(),
		service.WithClock(func() time.Time { return now }))
	defer svc.Close()

	ctx := cli.SetupSignalHandler()
	if err := svc.Reload(ctx, serviceConfig(cfg)); err != nil {
		return cli.NewCommandError("purge", err)
	}

	deleted, err := svc.PurgeNow(ctx)
	if errors.Is(err, retention.ErrRetentionDisabled) {
		return cli.NewConfigError("purge.max_age", fmt.Sprintf("%q keeps messages forever; nothing to purge", cfg.Purge.MaxAge))
	}
	if err != nil {
		return cli.NewCommandError("purge", err)
	}

	days := svc.Policy().MaxAgeDays
	return cli.Write(cmd.OutOrStdout(), format, purgeReport{
		Table:      svc.Table(),
		MaxAgeDays: days,
		Cutoff:     time.Unix(retention.Cutoff(now, days), 0).UTC(),
		Deleted:    deleted,
	})
}
