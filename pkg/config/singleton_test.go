package config

import (
	"testing"
)

func TestReloadConfig(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })

	path := writeConfig(t, "purge:\n  max_age: 30d\n")
	cfg, err := ReloadConfig(path)
	if err != nil {
		t.Fatalf("ReloadConfig() failed: %v", err)
	}
	if GetConfig() != cfg {
		t.Error("ReloadConfig() did not replace the global configuration")
	}
	if Path() != path {
		t.Errorf("Path() = %q, want %q", Path(), path)
	}
}

func TestReloadConfig_KeepsPreviousOnError(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })

	good, err := ReloadConfig(writeConfig(t, "purge:\n  max_age: 30d\n"))
	if err != nil {
		t.Fatalf("ReloadConfig() failed: %v", err)
	}

	if _, err := ReloadConfig(writeConfig(t, "database:\n  backend: oracle\n")); err == nil {
		t.Fatal("ReloadConfig() of an invalid file should fail")
	}
	if GetConfig() != good {
		t.Error("failed reload replaced the global configuration")
	}
}

func TestMustGetConfig_Panics(t *testing.T) {
	SetConfig(nil)
	defer func() {
		if recover() == nil {
			t.Error("MustGetConfig() should panic when uninitialized")
		}
	}()
	MustGetConfig()
}
