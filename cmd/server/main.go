package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"saunapos/internal/config"
	"saunapos/internal/infra"
	"saunapos/internal/repository"
	"saunapos/internal/router"
	"saunapos/internal/service"
	"saunapos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal().Str("timezone", cfg.Timezone).Err(err).Msg("invalid facility timezone")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Start goroutine worker pool for async tasks (closing report PDF + mail)
	// and the rollup cron. Worker handlers are wired here (composition root)
	// so that the pool has full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	closingRepo := repository.NewClosingRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	rentalRepo := repository.NewRentalRepository(db)
	settingsSvc := service.NewSettingsService(repository.NewSettingsRepository(db), loc)
	closingSvc := service.NewClosingService(closingRepo, sessionRepo, feeRepo, rentalRepo, summaryRepo, settingsSvc, dispatcher)

	workerHandlers := &worker.WorkerHandlers{
		ClosingReport: worker.NewClosingReportWorker(closingRepo, summaryRepo, mailer, mailCB, cfg.PDFStoragePath, cfg.ReportEmail),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)
	worker.StartRollupCron(ctx, worker.RollupCronConfig{
		Builder:   closingSvc,
		Summaries: summaryRepo,
		Tariff:    settingsSvc.Tariff,
	})

	r := router.New(cfg, db, rdb, loc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("saunapos backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
