package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Identity string `yaml:"identity"`
	Local    struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"local"`
	Remote struct {
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"remote"`
	Sync struct {
		DebounceSeconds int `yaml:"debounce_seconds"`
	} `yaml:"sync"`
	Schedule struct {
		ReconcileCron   string `yaml:"reconcile_cron"`
		RateRefreshCron string `yaml:"rate_refresh_cron"`
	} `yaml:"schedule"`
	MarketData struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"market_data"`
	Defaults struct {
		StartingCapital     float64 `yaml:"starting_capital"`
		MonthlyContribution float64 `yaml:"monthly_contribution"`
		HorizonYears        int     `yaml:"horizon_years"`
		BaseRatePercent     float64 `yaml:"base_rate_percent"`
		HurdleRatePercent   float64 `yaml:"hurdle_rate_percent"`
		AssetLabel          string  `yaml:"asset_label"`
	} `yaml:"defaults"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
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
	if v := os.Getenv("WEALTHCOMPASS_IDENTITY"); v != "" {
		cfg.Identity = v
	}
	if v := os.Getenv("REMOTE_BASE_URL"); v != "" {
		cfg.Remote.BaseURL = v
	}
	if v := os.Getenv("REMOTE_API_KEY"); v != "" {
		cfg.Remote.APIKey = v
	}
	if v := os.Getenv("MARKETDATA_BASE_URL"); v != "" {
		cfg.MarketData.BaseURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Local.SQLitePath = v
	}
	if v := os.Getenv("SYNC_DEBOUNCE_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sync.DebounceSeconds = n
		}
	}
	if v := os.Getenv("CRON_RECONCILE"); v != "" {
		cfg.Schedule.ReconcileCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Local.SQLitePath == "" {
		cfg.Local.SQLitePath = "data/wealthcompass.db"
	}
	if cfg.Remote.TimeoutSeconds == 0 {
		cfg.Remote.TimeoutSeconds = 15
	}
	if cfg.Sync.DebounceSeconds == 0 {
		cfg.Sync.DebounceSeconds = 3
	}
	if cfg.Schedule.ReconcileCron == "" {
		cfg.Schedule.ReconcileCron = "*/30 * * * * *"
	}
	if cfg.Schedule.RateRefreshCron == "" {
		cfg.Schedule.RateRefreshCron = "0 0 7 * * *"
	}
	if cfg.Defaults.MonthlyContribution == 0 {
		cfg.Defaults.MonthlyContribution = 500
	}
	if cfg.Defaults.HorizonYears == 0 {
		cfg.Defaults.HorizonYears = 20
	}
	if cfg.Defaults.BaseRatePercent == 0 {
		cfg.Defaults.BaseRatePercent = 9
	}
	if cfg.Defaults.HurdleRatePercent == 0 {
		cfg.Defaults.HurdleRatePercent = 7
	}
	if cfg.Defaults.AssetLabel == "" {
		cfg.Defaults.AssetLabel = "sp500"
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Sync.DebounceSeconds < 1 {
		return fmt.Errorf("sync.debounce_seconds must be at least 1")
	}
	if c.Defaults.HorizonYears < 1 {
		return fmt.Errorf("defaults.horizon_years must be at least 1")
	}
	if c.Defaults.StartingCapital < 0 {
		return fmt.Errorf("defaults.starting_capital must not be negative")
	}
	if c.Defaults.MonthlyContribution < 0 {
		return fmt.Errorf("defaults.monthly_contribution must not be negative")
	}
	return nil
}
