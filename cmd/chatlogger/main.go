// Chatlogger records game-server chat into a SQL table and purges old
// messages every day at a local time.
//
// It reads public, team and private chat events from the host bot (as
// JSON lines on stdin or from a Redis channel), stores each one as a row,
// and deletes rows older than the configured max age.
//
// Usage:
//
//	# Log events piped from the host
//	host-bot --emit-chat | chatlogger run --config chatlogger.yaml
//
//	# Purge old messages now
//	chatlogger purge --config chatlogger.yaml
//
//	# Show when the next purge runs
//	chatlogger schedule
//
//	# Check a configuration file
//	chatlogger validate --config chatlogger.yaml
package main

func main() {
	Execute()
}
