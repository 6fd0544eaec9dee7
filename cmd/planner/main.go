package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"WealthCompass/internal/config"
	"WealthCompass/internal/coordinator"
	"WealthCompass/internal/marketdata"
	"WealthCompass/internal/model"
	"WealthCompass/internal/report"
	"WealthCompass/internal/scheduler"
	"WealthCompass/internal/store"

	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	log.Info().Msg("WealthCompass starting")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	// Local tier: SQLite, degrading to memory-only when storage is unusable.
	var local store.LocalStore
	if err := os.MkdirAll(filepath.Dir(cfg.Local.SQLitePath), 0o755); err != nil {
		log.Warn().Err(err).Msg("create data dir failed")
	}
	sqlStore, err := store.NewSQLiteLocal(cfg.Local.SQLitePath, log)
	if err != nil {
		log.Warn().Err(err).Msg("local storage unavailable, state will not survive restarts")
		local = store.NewMemoryLocal()
	} else {
		local = sqlStore
		defer sqlStore.Close()
	}

	// Remote tier: REST when configured, in-memory otherwise so the full
	// sync path still runs offline.
	var remote store.RemoteStore
	if cfg.Remote.BaseURL != "" {
		remote = store.NewRESTRemote(cfg.Remote.BaseURL, cfg.Remote.APIKey, cfg.Proxy,
			time.Duration(cfg.Remote.TimeoutSeconds)*time.Second)
		log.Info().Str("base_url", cfg.Remote.BaseURL).Msg("remote tier: rest")
	} else {
		remote = store.NewMemoryRemote()
		log.Info().Msg("remote tier: in-memory (offline mode)")
	}

	defaults := model.DefaultInputs()
	defaults.StartingCapital = cfg.Defaults.StartingCapital
	defaults.MonthlyContribution = cfg.Defaults.MonthlyContribution
	defaults.HorizonYears = cfg.Defaults.HorizonYears
	defaults.BaseRatePercent = cfg.Defaults.BaseRatePercent
	defaults.HurdleRatePercent = cfg.Defaults.HurdleRatePercent
	defaults.AssetLabel = cfg.Defaults.AssetLabel

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	coord, err := coordinator.New(ctx, coordinator.Options{
		Local:         local,
		Remote:        remote,
		Identity:      cfg.Identity,
		Defaults:      &defaults,
		DebounceDelay: time.Duration(cfg.Sync.DebounceSeconds) * time.Second,
		RemoteTimeout: time.Duration(cfg.Remote.TimeoutSeconds) * time.Second,
		Logger:        log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init coordinator")
	}
	defer coord.Close()

	// Market-data rate provider
	var provider marketdata.Provider
	if cfg.MarketData.BaseURL != "" {
		provider = marketdata.NewRESTProvider(cfg.MarketData.BaseURL, cfg.MarketData.APIKey, cfg.Proxy)
	} else {
		provider = marketdata.NewStaticProvider()
	}
	log.Info().Str("rate_provider", provider.Name()).Msg("market data configured")

	sched := scheduler.New(coord, provider, log)
	if err := sched.Register(cfg.Schedule.ReconcileCron, cfg.Schedule.RateRefreshCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	st := coord.State()
	log.Info().Msg(report.ProjectionSummary(st))
	log.Info().Msg("milestones:\n" + report.Milestones(st))

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, refreshing rate now")
		go sched.RefreshRateNow()
	}

	log.Info().Msg("WealthCompass is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, flushing pending sync")
	flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := coord.Flush(flushCtx); err != nil {
		log.Warn().Err(err).Msg("final sync failed")
	}
	flushCancel()
	cancel()
	log.Info().Msg("WealthCompass stopped")
}
