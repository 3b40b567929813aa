package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/chatlogger/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "chatlogger",
	Short: "Chat logger with timezone-aware retention",
	Long: `Chatlogger stores public, team and private chat messages emitted by a
game-server bot and deletes messages older than a configured age once a day.

Messages are written to a SQLite or MySQL table. The daily purge time is
given in the host's time zone and converted to UTC for scheduling.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "chatlogger.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
