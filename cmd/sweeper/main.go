// The sweeper is the background worker of the lending system. On its
// cron schedule it loads every patron with open holds or checkouts,
// expires holds past their expiry date and marks checkouts past their
// due date overdue, publishing the resulting events.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/publiclibrary/lending-go/eventstore/postgresengine"
	"github.com/publiclibrary/lending-go/lending/features/sweep"
	"github.com/publiclibrary/lending-go/lending/shared/shell/config"
	"github.com/publiclibrary/lending-go/lending/shared/shell/postgres"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("sweeper terminated", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// A local .env is optional, the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.LoadLendingConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poolConfig, err := config.PostgresPGXPoolConfig(config.PostgresDSN())
	if err != nil {
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err = postgres.InitSchema(ctx, pool); err != nil {
		return err
	}

	eventStore, err := postgresengine.NewEventStoreFromPGXPool(
		pool,
		postgresengine.WithTableName(cfg.EventsTableName),
		postgresengine.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	patrons := postgres.NewPatronRepository(pool)
	publisher := postgres.NewEventPublisher(eventStore)
	handler := sweep.NewHandler(patrons, publisher, logger)

	runSweep := func() {
		start := time.Now()

		batch, findErr := patrons.FindWithOpenWork(ctx)
		if findErr != nil {
			logger.Error("loading sweep batch failed", "error", findErr)
			return
		}

		report, sweepErr := handler.Run(ctx, batch, time.Now())
		if sweepErr != nil {
			logger.Error("sweep finished with failures", "error", sweepErr)
		}

		logger.Info("sweep completed",
			"patrons_checked", len(batch),
			"patrons_swept", report.PatronsSwept,
			"holds_expired", report.HoldsExpired,
			"checkouts_marked_overdue", report.CheckoutsMarkedOverdue,
			"patrons_failed", report.PatronsFailed,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	scheduler := cron.New()

	if _, err = scheduler.AddFunc(cfg.SweepSchedule, runSweep); err != nil {
		return err
	}

	logger.Info("sweeper started", "schedule", cfg.SweepSchedule)

	// Catch up on anything that became due while the sweeper was down.
	runSweep()

	scheduler.Start()

	<-ctx.Done()
	logger.Info("sweeper shutting down")

	shutdownCtx := scheduler.Stop()
	<-shutdownCtx.Done()

	return nil
}
