package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"mercator-hq/chatlogger/pkg/chatlog/retention"
	"mercator-hq/chatlogger/pkg/cli"
	"mercator-hq/chatlogger/pkg/config"
)

var scheduleFlags struct {
	output string
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the retention policy and next purge time",
	Long: `Compute the retention policy from the configuration and show when the
daily purge fires, both in the host's time zone and in UTC.

Examples:
  chatlogger schedule
  chatlogger schedule --output json`,
	RunE: showSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVarP(&scheduleFlags.output, "output", "o", "text", "output format: text, json")
}

// scheduleReport describes the effective retention policy.
type scheduleReport struct {
	Table      string     `json:"table"`
	MaxAgeDays int        `json:"max_age_days"`
	Enabled    bool       `json:"enabled"`
	LocalTime  string     `json:"local_time,omitempty"`
	TimeZone   string     `json:"time_zone,omitempty"`
	UTCOffset  int        `json:"utc_offset_hours"`
	TriggerUTC string     `json:"trigger_utc,omitempty"`
	Cron       string     `json:"cron,omitempty"`
	NextRun    *time.Time `json:"next_run,omitempty"`
	Warnings   []string   `json:"warnings,omitempty"`
}

func (r scheduleReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Table:       %s\n", r.Table)
	if !r.Enabled {
		sb.WriteString("Retention:   messages are kept forever\n")
	} else {
		fmt.Fprintf(&sb, "Retention:   %d days\n", r.MaxAgeDays)
		fmt.Fprintf(&sb, "Purge at:    %s %s (UTC%+d)\n", r.LocalTime, r.TimeZone, r.UTCOffset)
		fmt.Fprintf(&sb, "Trigger:     %s UTC (cron %q)\n", r.TriggerUTC, r.Cron)
		if r.NextRun != nil {
			fmt.Fprintf(&sb, "Next run:    %s\n", r.NextRun.Format(time.RFC3339))
		}
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&sb, "Warning:     %s\n", w)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// buildScheduleReport computes the policy for cfg as of now.
func buildScheduleReport(cfg *config.Config, now time.Time) scheduleReport {
	policy, err := retention.ComputePolicy(cfg.Purge.MaxAge, cfg.Purge.Hour, cfg.Purge.Minute, cfg.Host.TimeZone)

	report := scheduleReport{
		Table:      cfg.Database.TableName,
		MaxAgeDays: policy.MaxAgeDays,
		Enabled:    policy.Enabled(),
		UTCOffset:  policy.UTCOffset,
	}
	if err != nil {
		report.Warnings = strings.Split(err.Error(), "\n")
	}
	if !policy.Enabled() {
		return report
	}

	report.LocalTime = fmt.Sprintf("%02d:%02d", policy.LocalHour, policy.LocalMinute)
	report.TimeZone = policy.TimeZone
	report.TriggerUTC = fmt.Sprintf("%02d:%02d", policy.TriggerHourUTC, policy.TriggerMinuteUTC)
	report.Cron = policy.Spec()

	if sched, err := cron.ParseStandard(policy.Spec()); err == nil {
		next := sched.Next(now.UTC())
		report.NextRun = &next
	}
	return report
}

func showSchedule(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(scheduleFlags.output)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	return cli.Write(cmd.OutOrStdout(), format, buildScheduleReport(cfg, time.Now()))
}
