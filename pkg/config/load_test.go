package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chatlogger.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, fullYAML)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Database.TableName != "bot2_chat" {
		t.Errorf("TableName = %q", cfg.Database.TableName)
	}
	// Defaults fill what the file leaves out.
	if cfg.Database.SQLite.Path != DefaultSQLitePath {
		t.Errorf("SQLite.Path = %q", cfg.Database.SQLite.Path)
	}
	if cfg.Telemetry.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q", cfg.Telemetry.Metrics.Path)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "purge: [unclosed",
			wantErr: "failed to parse",
		},
		{
			name:    "invalid table name",
			content: "database:\n  table_name: \"chat; DROP TABLE x\"\n",
			wantErr: "database.table_name",
		},
		{
			name:    "mysql without dsn",
			content: "database:\n  backend: mysql\n",
			wantErr: "database.mysql.dsn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadConfig() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("LoadConfig() error = %v", err)
	}
}

func TestLoadConfig_BadMaxAgeIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "purge:\n  max_age: soon\n  hour: 99\n"))
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Purge.MaxAge != "soon" || cfg.Purge.Hour != 99 {
		t.Errorf("Purge = %+v, want raw values preserved", cfg.Purge)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "purge:\n  max_age: 30d\n")

	t.Setenv("CHATLOGGER_PURGE_MAX_AGE", "2w")
	t.Setenv("CHATLOGGER_PURGE_HOUR", "5")
	t.Setenv("CHATLOGGER_PURGE_MINUTE", "not-a-number")
	t.Setenv("CHATLOGGER_HOST_TIME_ZONE", "EST")
	t.Setenv("CHATLOGGER_DATABASE_TABLE_NAME", "bot3_chat")
	t.Setenv("CHATLOGGER_DATABASE_AUTO_MIGRATE", "false")
	t.Setenv("CHATLOGGER_DATABASE_SQLITE_BUSY_TIMEOUT", "9s")
	t.Setenv("CHATLOGGER_TELEMETRY_METRICS_ENABLED", "true")
	t.Setenv("CHATLOGGER_TELEMETRY_TRACING_SAMPLER", "ratio")
	t.Setenv("CHATLOGGER_TELEMETRY_TRACING_SAMPLE_RATIO", "0.25")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() failed: %v", err)
	}

	if cfg.Purge.MaxAge != "2w" {
		t.Errorf("MaxAge = %q, want 2w", cfg.Purge.MaxAge)
	}
	if cfg.Purge.Hour != 5 {
		t.Errorf("Hour = %d, want 5", cfg.Purge.Hour)
	}
	if cfg.Purge.Minute != 0 {
		t.Errorf("Minute = %d, malformed override should be ignored", cfg.Purge.Minute)
	}
	if cfg.Host.TimeZone != "EST" {
		t.Errorf("TimeZone = %q", cfg.Host.TimeZone)
	}
	if cfg.Database.TableName != "bot3_chat" {
		t.Errorf("TableName = %q", cfg.Database.TableName)
	}
	if cfg.Database.Migrate() {
		t.Error("AutoMigrate override not applied")
	}
	if cfg.Database.SQLite.BusyTimeout != 9*time.Second {
		t.Errorf("BusyTimeout = %v", cfg.Database.SQLite.BusyTimeout)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("Metrics.Enabled override not applied")
	}
	if cfg.Telemetry.Tracing.Sampler != "ratio" || cfg.Telemetry.Tracing.SampleRatio != 0.25 {
		t.Errorf("Tracing = %+v", cfg.Telemetry.Tracing)
	}
}

func TestLoadConfigWithEnvOverrides_Validated(t *testing.T) {
	path := writeConfig(t, "database:\n  table_name: chatlog\n")
	t.Setenv("CHATLOGGER_DATABASE_BACKEND", "postgres")

	if _, err := LoadConfigWithEnvOverrides(path); err == nil {
		t.Error("invalid override should fail validation")
	}
}

func TestLoadConfig_ExampleFile(t *testing.T) {
	cfg, err := LoadConfig("../../chatlogger.example.yaml")
	if err != nil {
		t.Fatalf("example configuration does not load: %v", err)
	}
	if cfg.Purge.MaxAge != "30d" || cfg.Host.TimeZone != "CET" {
		t.Errorf("Purge = %+v, Host = %+v", cfg.Purge, cfg.Host)
	}
	if cfg.Telemetry.Tracing.Sampler != "ratio" {
		t.Errorf("Tracing.Sampler = %q", cfg.Telemetry.Tracing.Sampler)
	}
}
