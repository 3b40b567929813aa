/*
Package cli provides command-line helpers used by the chatlogger command.

Output Formatting:

Commands that print results support text and JSON output:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	return cli.Write(cmd.OutOrStdout(), format, report)

Signal Handling:

SIGINT and SIGTERM cancel the root context; SIGHUP requests a
configuration reload:

	ctx := cli.SetupSignalHandler()
	reload, stop := cli.NotifyReload()
	defer stop()

Errors:

ExitCode maps command errors to process exit codes, with configuration
problems reported as ExitConfigError.
*/
package cli
