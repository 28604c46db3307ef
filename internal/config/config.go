package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Data struct {
		ChartDir string `yaml:"chart_dir"`
	} `yaml:"data"`
	Schedule struct {
		SweepCron string `yaml:"sweep_cron"`
	} `yaml:"schedule"`
	Analysis struct {
		// CFC is the SAE J211 channel frequency class used when
		// reprocessing traces outside the standard pipeline run.
		CFC int `yaml:"cfc"`
	} `yaml:"analysis"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CHART_DIR"); v != "" {
		cfg.Data.ChartDir = v
	}
	if v := os.Getenv("SWEEP_CRON"); v != "" {
		cfg.Schedule.SweepCron = v
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/crash_data.db"
	}
	if cfg.Schedule.SweepCron == "" {
		cfg.Schedule.SweepCron = "0 0 3 * * *"
	}
	if cfg.Analysis.CFC == 0 {
		cfg.Analysis.CFC = 60
	}

	return cfg, nil
}

// Validate checks that all required fields are usable.
func (c *Config) Validate() error {
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	if c.Analysis.CFC <= 0 {
		return fmt.Errorf("analysis.cfc must be positive")
	}
	return nil
}
