package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.Sync.DebounceSeconds != 3 {
		t.Errorf("expected default debounce 3s, got %d", cfg.Sync.DebounceSeconds)
	}
	if cfg.Schedule.ReconcileCron == "" {
		t.Error("expected a default reconcile cron spec")
	}
	if cfg.Defaults.HorizonYears != 20 {
		t.Errorf("expected default horizon 20, got %d", cfg.Defaults.HorizonYears)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
identity: alice
remote:
  base_url: https://sync.example.com
sync:
  debounce_seconds: 5
defaults:
  monthly_contribution: 750
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SYNC_DEBOUNCE_SECONDS", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Identity != "alice" {
		t.Errorf("expected identity alice, got %q", cfg.Identity)
	}
	if cfg.Remote.BaseURL != "https://sync.example.com" {
		t.Errorf("unexpected base url %q", cfg.Remote.BaseURL)
	}
	if cfg.Sync.DebounceSeconds != 7 {
		t.Errorf("env must override file: got %d", cfg.Sync.DebounceSeconds)
	}
	if cfg.Defaults.MonthlyContribution != 750 {
		t.Errorf("expected 750, got %v", cfg.Defaults.MonthlyContribution)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Defaults.HorizonYears = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero horizon")
	}

	cfg, _ = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	cfg.Defaults.StartingCapital = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative capital")
	}
}
