package config

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

const fullYAML = `
host:
  time_zone: CET
database:
  table_name: bot2_chat
  backend: mysql
  auto_migrate: false
  mysql:
    dsn: "b3:secret@tcp(db:3306)/b3"
    max_open_conns: 4
    max_idle_conns: 2
    conn_max_lifetime: 10m
purge:
  max_age: 30d
  hour: 3
  minute: 15
bus:
  source: redis
  redis:
    addr: "cache:6379"
    channel: "b3:chat"
telemetry:
  logging:
    level: debug
    format: text
    redact_messages: true
  metrics:
    enabled: true
    listen_address: ":9100"
`

func TestConfig_UnmarshalYAML(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(fullYAML), &cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if cfg.Host.TimeZone != "CET" {
		t.Errorf("TimeZone = %q", cfg.Host.TimeZone)
	}
	if cfg.Database.TableName != "bot2_chat" || cfg.Database.Backend != "mysql" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Database.Migrate() {
		t.Error("auto_migrate: false not honoured")
	}
	if cfg.Database.MySQL.ConnMaxLifetime != 10*time.Minute {
		t.Errorf("ConnMaxLifetime = %v", cfg.Database.MySQL.ConnMaxLifetime)
	}
	if cfg.Purge.MaxAge != "30d" || cfg.Purge.Hour != 3 || cfg.Purge.Minute != 15 {
		t.Errorf("Purge = %+v", cfg.Purge)
	}
	if cfg.Bus.Source != "redis" || cfg.Bus.Redis.Channel != "b3:chat" {
		t.Errorf("Bus = %+v", cfg.Bus)
	}
	if !cfg.Telemetry.Logging.RedactMessages || !cfg.Telemetry.Metrics.Enabled {
		t.Errorf("Telemetry = %+v", cfg.Telemetry)
	}
}

func TestDatabaseConfig_Migrate(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want bool
	}{
		{name: "unset", cfg: DatabaseConfig{}, want: true},
		{name: "true", cfg: DatabaseConfig{AutoMigrate: &yes}, want: true},
		{name: "false", cfg: DatabaseConfig{AutoMigrate: &no}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Migrate(); got != tt.want {
				t.Errorf("Migrate() = %v, want %v", got, tt.want)
			}
		})
	}
}
