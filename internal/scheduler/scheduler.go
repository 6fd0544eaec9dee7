// Package scheduler runs the periodic background passes: local-store
// reconciliation for contexts that missed a broadcast, and the market-data
// rate refresh. Both intervals are explicit configuration values; an empty
// cron spec disables the job.
package scheduler

import (
	"context"
	"fmt"
	"math"
	"time"

	"WealthCompass/internal/coordinator"
	"WealthCompass/internal/marketdata"
	"WealthCompass/internal/model"
	"WealthCompass/internal/report"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	cron     *cron.Cron
	coord    *coordinator.Coordinator
	provider marketdata.Provider
	log      zerolog.Logger
}

// New creates a Scheduler around the given coordinator and rate provider.
func New(coord *coordinator.Coordinator, provider marketdata.Provider, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		coord:    coord,
		provider: provider,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the reconcile and rate-refresh jobs. An empty spec skips
// the corresponding job.
func (s *Scheduler) Register(reconcileCron, rateRefreshCron string) error {
	if reconcileCron != "" {
		if _, err := s.cron.AddFunc(reconcileCron, s.coord.Reconcile); err != nil {
			return fmt.Errorf("register reconcile task: %w", err)
		}
	}
	if rateRefreshCron != "" && s.provider != nil {
		if _, err := s.cron.AddFunc(rateRefreshCron, s.refreshRate); err != nil {
			return fmt.Errorf("register rate refresh task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RefreshRateNow runs the rate refresh immediately (manual trigger).
func (s *Scheduler) RefreshRateNow() {
	s.refreshRate()
}

func (s *Scheduler) refreshRate() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st := s.coord.State()
	rate, err := s.provider.SuggestedRate(ctx, st.AssetLabel)
	if err != nil {
		s.log.Warn().Err(err).Str("asset", st.AssetLabel).Msg("rate refresh failed")
		return
	}
	if math.Abs(rate-st.BaseRatePercent) < 1e-9 {
		return
	}

	updated := s.coord.UpdateState(model.Patch{BaseRatePercent: &rate})
	s.log.Info().
		Str("asset", st.AssetLabel).
		Float64("rate_percent", rate).
		Str("source", s.provider.Name()).
		Msg("base rate refreshed")
	s.log.Info().Msg(report.ProjectionSummary(updated))
}
