package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
sweep_interval = 4
working_set = 3
slow_frame = "8ms"
log_level = " DEBUG "
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SweepInterval != 4 || cfg.WorkingSet != 3 {
		t.Errorf("Unexpected sweep settings %+v", cfg)
	}
	if cfg.SlowFrame != 8*time.Millisecond {
		t.Errorf("Expected 8ms slow frame, got %v", cfg.SlowFrame)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected normalized log level, got %q", cfg.LogLevel)
	}
	if cfg.WindowWidth != Default().WindowWidth {
		t.Errorf("Expected default width kept, got %d", cfg.WindowWidth)
	}
}

func TestLoadClamps(t *testing.T) {
	path := writeConfig(t, "sweep_interval = 0\nwindow_width = 5\ntitle = \"\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SweepInterval != 1 {
		t.Errorf("Expected sweep interval clamped to 1, got %d", cfg.SweepInterval)
	}
	if cfg.WindowWidth != 64 {
		t.Errorf("Expected width clamped to 64, got %d", cfg.WindowWidth)
	}
	if cfg.Title != Default().Title {
		t.Errorf("Expected default title, got %q", cfg.Title)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("Expected error for missing file")
	}
	if _, err := Load(writeConfig(t, `slow_frame = "soon"`)); err == nil {
		t.Errorf("Expected error for bad duration")
	}
	if _, err := Load(writeConfig(t, `render_distance = 3`)); err == nil {
		t.Errorf("Expected error for unknown key")
	}
}

func TestSetSweepInterval(t *testing.T) {
	defer Set(Default())

	SetSweepInterval(1000)
	if GetSweepInterval() != 600 {
		t.Errorf("Expected clamp to 600, got %d", GetSweepInterval())
	}
	Set(Settings{SweepInterval: 5, FPSLimit: 30})
	if GetSweepInterval() != 5 || GetFPSLimit() != 30 {
		t.Errorf("Unexpected settings %+v", Get())
	}
}
