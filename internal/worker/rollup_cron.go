package worker

// rollup_cron.go
// Background goroutine that keeps the current business day's revenue rollup
// fresh. It recomputes the DailySummary from source records on a fixed tick
// and upserts it by business-day key, so dashboards read an aggregate that is
// never more than one tick stale. Closed days are left alone.

import (
	"context"
	"time"

	"saunapos/internal/model"
	"saunapos/internal/pricing"
	"saunapos/internal/repository"

	"github.com/rs/zerolog/log"
)

const rollupTickInterval = 60 * time.Second

// SummaryBuilder recomputes a day's rollup from source records. Implemented
// by the closing service; declared here to keep the dependency pointing
// worker ← service, matching the dispatcher direction.
type SummaryBuilder interface {
	BuildSummary(ctx context.Context, businessDay string) (*model.DailySummary, error)
}

// RollupCronConfig holds all dependencies for the rollup goroutine.
type RollupCronConfig struct {
	Builder   SummaryBuilder
	Summaries repository.SummaryRepository
	// Tariff yields the live pricing configuration; the cron only needs it
	// to resolve "now" to a business day.
	Tariff func(ctx context.Context) (pricing.Tariff, error)
}

// StartRollupCron launches a background goroutine that upserts the current
// business day's summary every tick. Respects the context for graceful
// shutdown.
func StartRollupCron(ctx context.Context, cfg RollupCronConfig) {
	go func() {
		ticker := time.NewTicker(rollupTickInterval)
		defer ticker.Stop()

		log.Info().Msg("rollup_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("rollup_cron: shutting down")
				return
			case <-ticker.C:
				runRollup(ctx, cfg)
			}
		}
	}()
}

func runRollup(ctx context.Context, cfg RollupCronConfig) {
	tariff, err := cfg.Tariff(ctx)
	if err != nil {
		log.Error().Err(err).Msg("rollup_cron: failed to load tariff")
		return
	}
	businessDay := tariff.BusinessDay(time.Now())

	if existing, err := cfg.Summaries.FindByBusinessDay(ctx, businessDay); err == nil && existing.Closed {
		return // day already closed — the closing flow owns the final numbers
	}

	summary, err := cfg.Builder.BuildSummary(ctx, businessDay)
	if err != nil {
		log.Error().Str("business_day", businessDay).Err(err).Msg("rollup_cron: build failed")
		return
	}
	if err := cfg.Summaries.Upsert(ctx, summary); err != nil {
		log.Error().Str("business_day", businessDay).Err(err).Msg("rollup_cron: upsert failed")
		return
	}
	log.Debug().Str("business_day", businessDay).Msg("rollup_cron: summary refreshed")
}
