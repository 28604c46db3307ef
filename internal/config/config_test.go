package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.SQLitePath != "data/crash_data.db" {
		t.Errorf("sqlite path = %q", cfg.Database.SQLitePath)
	}
	if cfg.Schedule.SweepCron != "0 0 3 * * *" {
		t.Errorf("sweep cron = %q", cfg.Schedule.SweepCron)
	}
	if cfg.Analysis.CFC != 60 {
		t.Errorf("cfc = %d, want 60", cfg.Analysis.CFC)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	body := `
database:
  sqlite_path: /tmp/pulse.db
data:
  chart_dir: /tmp/charts
schedule:
  sweep_cron: "0 30 2 * * *"
analysis:
  cfc: 180
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.SQLitePath != "/tmp/pulse.db" {
		t.Errorf("sqlite path = %q", cfg.Database.SQLitePath)
	}
	if cfg.Data.ChartDir != "/tmp/charts" {
		t.Errorf("chart dir = %q", cfg.Data.ChartDir)
	}
	if cfg.Schedule.SweepCron != "0 30 2 * * *" {
		t.Errorf("sweep cron = %q", cfg.Schedule.SweepCron)
	}
	if cfg.Analysis.CFC != 180 {
		t.Errorf("cfc = %d, want 180", cfg.Analysis.CFC)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	body := "database:\n  sqlite_path: from_file.db\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SQLITE_PATH", "from_env.db")
	t.Setenv("CHART_DIR", "/env/charts")
	t.Setenv("SWEEP_CRON", "@hourly")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.SQLitePath != "from_env.db" {
		t.Errorf("sqlite path = %q, env should win", cfg.Database.SQLitePath)
	}
	if cfg.Data.ChartDir != "/env/charts" {
		t.Errorf("chart dir = %q", cfg.Data.ChartDir)
	}
	if cfg.Schedule.SweepCron != "@hourly" {
		t.Errorf("sweep cron = %q", cfg.Schedule.SweepCron)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Database.SQLitePath = "x.db"
	cfg.Analysis.CFC = 60
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.Analysis.CFC = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative cfc accepted")
	}

	cfg.Analysis.CFC = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero cfc accepted")
	}

	cfg.Analysis.CFC = 60
	cfg.Database.SQLitePath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty sqlite path accepted")
	}
}
