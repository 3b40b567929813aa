package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// writeTestConfig writes a config pointing at a SQLite database in a temp
// directory and returns the config path and database path.
func writeTestConfig(t *testing.T, extra string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "chatlog.db")
	content := "database:\n  sqlite:\n    path: " + dbPath + "\n" +
		"telemetry:\n  logging:\n    level: error\n" + extra

	cfgPath := filepath.Join(dir, "chatlogger.yaml")
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath, dbPath
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
