package cli

import (
	"syscall"
	"testing"
	"time"
)

func TestSetupSignalHandler(t *testing.T) {
	ctx := SetupSignalHandler()

	select {
	case <-ctx.Done():
		t.Error("Context should not be cancelled initially")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestNotifyReload(t *testing.T) {
	reload, stop := NotifyReload()
	defer stop()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGHUP); err != nil {
		t.Fatalf("kill: %v", err)
	}

	select {
	case sig := <-reload:
		if sig != syscall.SIGHUP {
			t.Errorf("received %v, want SIGHUP", sig)
		}
	case <-time.After(time.Second):
		t.Fatal("SIGHUP not delivered")
	}
}
