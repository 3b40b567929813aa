package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/chatlogger/pkg/chatlog/retention"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load the configuration file with environment overrides and check it.

Structural problems (bad table name, unknown backend, missing DSN) fail the
command. Retention settings that would be recovered at runtime, such as an
unparseable max age or an unknown time zone, are reported as warnings.

Examples:
  chatlogger validate --config chatlogger.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", cfgFile)

	policy, err := retention.ComputePolicy(cfg.Purge.MaxAge, cfg.Purge.Hour, cfg.Purge.Minute, cfg.Host.TimeZone)
	if err != nil {
		for _, w := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(out, "! %s\n", w)
		}
	}
	fmt.Fprintf(out, "✓ Table %q on %s\n", cfg.Database.TableName, cfg.Database.Backend)
	fmt.Fprintf(out, "✓ %s\n", policy)
	return nil
}
