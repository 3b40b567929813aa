package config

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesTriggers(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
	}

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("callback ran %d times, want 1", got)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })

	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("callback ran %d times after Stop, want 0", got)
	}
}

func TestFileWatcher_ReloadsOnChange(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })

	path := writeConfig(t, "purge:\n  max_age: 30d\n")

	fw, err := NewFileWatcher(path, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher() failed: %v", err)
	}

	reloaded := make(chan *Config, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- fw.Watch(ctx, func(cfg *Config) error {
			reloaded <- cfg
			return nil
		})
	}()
	defer func() {
		cancel()
		<-done
		fw.Stop()
	}()

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)

	// An invalid file is rejected and not passed on.
	if err := os.WriteFile(path, []byte("database:\n  backend: oracle\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case cfg := <-reloaded:
		t.Fatalf("invalid configuration was applied: %+v", cfg.Database)
	case <-time.After(200 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte("purge:\n  max_age: 1w\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case cfg := <-reloaded:
		if cfg.Purge.MaxAge != "1w" {
			t.Errorf("reloaded MaxAge = %q, want 1w", cfg.Purge.MaxAge)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("configuration change was not picked up")
	}
}
