// The sheetrebuild tool rebuilds the daily sheet read model from scratch
// by replaying every event stream through the projection. Run it after a
// projection bug fix or a schema change to the daily_sheets table.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/publiclibrary/lending-go/eventstore/postgresengine"
	"github.com/publiclibrary/lending-go/lending/features/projection/dailysheet"
	"github.com/publiclibrary/lending-go/lending/shared/shell"
	"github.com/publiclibrary/lending-go/lending/shared/shell/config"
	"github.com/publiclibrary/lending-go/lending/shared/shell/postgres"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("sheet rebuild terminated", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	_ = godotenv.Load()

	cfg, err := config.LoadLendingConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

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

	manager := dailysheet.NewManager(postgres.NewDailySheetRepository(pool), logger)

	start := time.Now()

	streamIDs, err := eventStore.StreamIDs(ctx)
	if err != nil {
		return err
	}

	var eventsReplayed, eventsFailed int

	for _, streamID := range streamIDs {
		storableEvents, _, queryErr := eventStore.Query(ctx, streamID)
		if queryErr != nil {
			return queryErr
		}

		envelopes, convertErr := shell.EventEnvelopesFrom(storableEvents)
		if convertErr != nil {
			return convertErr
		}

		for _, envelope := range envelopes {
			if handleErr := manager.Handle(ctx, envelope.DomainEvent); handleErr != nil {
				eventsFailed++

				logger.Error("projecting event failed",
					"stream_id", streamID.String(),
					"event_type", envelope.DomainEvent.IsEventType(),
					"message_id", envelope.EventMetadata.MessageID,
					"error", handleErr,
				)

				continue
			}

			eventsReplayed++
		}
	}

	logger.Info("daily sheet rebuilt",
		"streams", len(streamIDs),
		"events_replayed", eventsReplayed,
		"events_failed", eventsFailed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}
