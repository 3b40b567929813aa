package storage

import (
	"errors"
	"strings"
	"testing"
	"time"

	"mercator-hq/chatlogger/pkg/chatlog"
)

func TestNormalizeDSN(t *testing.T) {
	dsn, err := normalizeDSN("b3:secret@tcp(127.0.0.1:3306)/b3", 2*time.Second)
	if err != nil {
		t.Fatalf("normalizeDSN() failed: %v", err)
	}
	if !strings.Contains(dsn, "timeout=2s") {
		t.Errorf("normalizeDSN() = %q, want dial timeout", dsn)
	}
	if !strings.HasPrefix(dsn, "b3:secret@tcp(127.0.0.1:3306)/b3") {
		t.Errorf("normalizeDSN() = %q, lost connection settings", dsn)
	}
}

func TestNormalizeDSN_KeepsExplicitTimeout(t *testing.T) {
	dsn, err := normalizeDSN("b3@tcp(db:3306)/b3?timeout=10s", 2*time.Second)
	if err != nil {
		t.Fatalf("normalizeDSN() failed: %v", err)
	}
	if !strings.Contains(dsn, "timeout=10s") {
		t.Errorf("normalizeDSN() = %q, want explicit timeout kept", dsn)
	}
}

func TestNewMySQLStore_InvalidDSN(t *testing.T) {
	_, err := NewMySQLStore(&MySQLConfig{DSN: "b3@tcp(db:3306)"})
	var se *chatlog.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("NewMySQLStore() error = %v, want *chatlog.StorageError", err)
	}
	if se.Operation != "parse_dsn" {
		t.Errorf("Operation = %q, want parse_dsn", se.Operation)
	}
}

func TestMySQLSchema_UsesTableName(t *testing.T) {
	stmts := mysqlSchema("bot2_chat")
	if len(stmts) != 1 || !strings.Contains(stmts[0], "CREATE TABLE IF NOT EXISTS bot2_chat") {
		t.Errorf("mysqlSchema() = %v", stmts)
	}
}
