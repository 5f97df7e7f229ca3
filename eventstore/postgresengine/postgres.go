// Package postgresengine implements the Postgres engine of the lending
// event store: per-stream ordered reads and conditional appends with
// optimistic concurrency, built with goqu on top of interchangeable
// database adapters (pgx pool, sqlx, database/sql).
package postgresengine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/publiclibrary/lending-go/eventstore"
	"github.com/publiclibrary/lending-go/eventstore/postgresengine/internal/adapters"
)

const (
	defaultEventTableName     = "events"
	logMsgBuildQueryFailed    = "failed to build query"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgDBExecFailed        = "database execution failed during event append"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgQueryCompleted      = "query completed"
	logMsgEventsAppended      = "events appended"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logAttrError              = "error"
	logAttrStreamID           = "stream_id"
	logAttrEventCount         = "event_count"
	logAttrDurationMS         = "duration_ms"
	logAttrExpectedSequence   = "expected_sequence"
	colStreamID               = "stream_id"
	colSequenceNumber         = "sequence_number"
	colEventType              = "event_type"
	colOccurredAt             = "occurred_at"
	colPayload                = "payload"
	colMetadata               = "metadata"
	cteContext                = "context"
	dialectPostgres           = "postgres"
	aliasMaxSeq               = "max_seq"
	castUUID                  = "?::uuid"
	castText                  = "?::text"
	castTimestamp             = "?::timestamp with time zone"
	castJsonb                 = "?::jsonb"
	seqFromMaxExpr            = "COALESCE(max_seq, 0) + ?"
)

// EventStore is the Postgres-backed per-stream event store.
// The zero value is not usable, always construct it with one of the
// NewEventStoreFrom* factory methods.
type EventStore struct {
	db             adapters.DBAdapter
	eventTableName string
	logger         Logger
}

// NewEventStoreFromPGXPool creates an EventStore backed by a pgx connection pool.
func NewEventStoreFromPGXPool(pool *pgxpool.Pool, options ...Option) (EventStore, error) {
	if pool == nil {
		return EventStore{}, eventstore.ErrNilDatabaseHandle
	}

	return newEventStore(adapters.NewPGXAdapter(pool), options...)
}

// NewEventStoreFromSQLX creates an EventStore backed by an sqlx database handle.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseHandle
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

// NewEventStoreFromSQLDB creates an EventStore backed by a database/sql handle.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseHandle
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (EventStore, error) {
	es := EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(&es); err != nil {
			return EventStore{}, err
		}
	}

	return es, nil
}

// Query returns all events of the given stream in sequence order,
// together with the stream's current max sequence number.
func (es EventStore) Query(ctx context.Context, streamID uuid.UUID) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {
	start := time.Now()

	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Where(goqu.C(colStreamID).Eq(streamID.String())).
		Order(goqu.I(colSequenceNumber).Asc())

	query, _, err := selectStmt.ToSQL()
	if err != nil {
		es.logError(logMsgBuildQueryFailed, err)
		return nil, 0, err
	}

	rows, err := es.db.Query(ctx, query)
	if err != nil {
		es.logError(logMsgDBQueryFailed, err)
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	var events eventstore.StorableEvents
	var maxSequenceNumber eventstore.MaxSequenceNumberUint

	for rows.Next() {
		var (
			eventType      string
			occurredAt     time.Time
			payloadJSON    []byte
			metadataJSON   []byte
			sequenceNumber int64
		)

		if err = rows.Scan(&eventType, &occurredAt, &payloadJSON, &metadataJSON, &sequenceNumber); err != nil {
			es.logError(logMsgScanRowFailed, err)
			return nil, 0, err
		}

		event, buildErr := eventstore.BuildStorableEvent(eventType, occurredAt, payloadJSON, metadataJSON)
		if buildErr != nil {
			return nil, 0, buildErr
		}

		event.SequenceNumber = uint(sequenceNumber)
		maxSequenceNumber = event.SequenceNumber
		events = append(events, event)
	}

	es.logDebug(logMsgQueryCompleted,
		logAttrStreamID, streamID.String(),
		logAttrEventCount, len(events),
		logAttrDurationMS, time.Since(start).Milliseconds(),
	)

	return events, maxSequenceNumber, nil
}

// MaxSequenceNumber returns the stream's current max sequence number
// without reading the events back, 0 for a stream with no events yet.
func (es EventStore) MaxSequenceNumber(ctx context.Context, streamID uuid.UUID) (
	eventstore.MaxSequenceNumberUint,
	error,
) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(goqu.COALESCE(goqu.MAX(colSequenceNumber), 0).As(aliasMaxSeq)).
		Where(goqu.C(colStreamID).Eq(streamID.String()))

	query, _, err := selectStmt.ToSQL()
	if err != nil {
		es.logError(logMsgBuildQueryFailed, err)
		return 0, err
	}

	rows, err := es.db.Query(ctx, query)
	if err != nil {
		es.logError(logMsgDBQueryFailed, err)
		return 0, err
	}
	defer func() { _ = rows.Close() }()

	var maxSequenceNumber int64
	if rows.Next() {
		if err = rows.Scan(&maxSequenceNumber); err != nil {
			es.logError(logMsgScanRowFailed, err)
			return 0, err
		}
	}

	return uint(maxSequenceNumber), nil
}

// StreamIDs returns the distinct stream IDs present in the events table,
// ordered for stable iteration. It exists for full replays, not for hot paths.
func (es EventStore) StreamIDs(ctx context.Context) ([]uuid.UUID, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(goqu.L("DISTINCT ?::text", goqu.C(colStreamID)).As(colStreamID)).
		Order(goqu.I(colStreamID).Asc())

	query, _, err := selectStmt.ToSQL()
	if err != nil {
		es.logError(logMsgBuildQueryFailed, err)
		return nil, err
	}

	rows, err := es.db.Query(ctx, query)
	if err != nil {
		es.logError(logMsgDBQueryFailed, err)
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var streamIDs []uuid.UUID

	for rows.Next() {
		var rawID string
		if err = rows.Scan(&rawID); err != nil {
			es.logError(logMsgScanRowFailed, err)
			return nil, err
		}

		streamID, parseErr := uuid.Parse(rawID)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing stream id %q: %w", rawID, parseErr)
		}

		streamIDs = append(streamIDs, streamID)
	}

	return streamIDs, nil
}

// Append appends the given events to the stream, in the given order,
// but only if the stream's max sequence number still equals
// expectedMaxSequenceNumber. Otherwise it returns ErrConcurrencyConflict
// and the caller has to reload the aggregate and retry the command.
func (es EventStore) Append(
	ctx context.Context,
	streamID uuid.UUID,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	storableEvents ...eventstore.StorableEvent,
) error {
	if len(storableEvents) == 0 {
		return nil
	}

	start := time.Now()

	query, err := es.buildConditionalInsert(streamID, expectedMaxSequenceNumber, storableEvents)
	if err != nil {
		es.logError(logMsgBuildQueryFailed, err)
		return err
	}

	result, err := es.db.Exec(ctx, query)
	if err != nil {
		es.logError(logMsgDBExecFailed, err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		es.logError(logMsgRowsAffectedFailed, err)
		return err
	}

	if rowsAffected != int64(len(storableEvents)) {
		es.logDebug(logMsgConcurrencyConflict,
			logAttrStreamID, streamID.String(),
			logAttrExpectedSequence, expectedMaxSequenceNumber,
		)

		return eventstore.ErrConcurrencyConflict
	}

	es.logDebug(logMsgEventsAppended,
		logAttrStreamID, streamID.String(),
		logAttrEventCount, len(storableEvents),
		logAttrDurationMS, time.Since(start).Milliseconds(),
	)

	return nil
}

// buildConditionalInsert builds the insert statement that assigns the
// next sequence numbers from a CTE over the stream's current max and
// inserts nothing at all unless that max still matches the expectation.
func (es EventStore) buildConditionalInsert(
	streamID uuid.UUID,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	storableEvents eventstore.StorableEvents,
) (string, error) {
	builder := goqu.Dialect(dialectPostgres)

	contextQuery := builder.
		From(es.eventTableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq)).
		Where(goqu.C(colStreamID).Eq(streamID.String()))

	selectStatements := make([]*goqu.SelectDataset, len(storableEvents))

	for idx, event := range storableEvents {
		selectStatements[idx] = builder.
			From(cteContext).
			Select(
				goqu.L(castUUID, streamID.String()).As(colStreamID),
				goqu.L(seqFromMaxExpr, idx+1).As(colSequenceNumber),
				goqu.L(castText, event.EventType).As(colEventType),
				goqu.L(castTimestamp, event.OccurredAt).As(colOccurredAt),
				goqu.L(castJsonb, string(event.PayloadJSON)).As(colPayload),
				goqu.L(castJsonb, string(event.MetadataJSON)).As(colMetadata),
			).
			Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber)))
	}

	sourceQuery := selectStatements[0]
	for _, selectStmt := range selectStatements[1:] {
		sourceQuery = sourceQuery.UnionAll(selectStmt)
	}

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colStreamID, colSequenceNumber, colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, contextQuery).
		FromQuery(sourceQuery)

	query, _, err := insertStmt.ToSQL()
	if err != nil {
		return "", fmt.Errorf("building conditional insert: %w", err)
	}

	return query, nil
}

func (es EventStore) logDebug(msg string, args ...any) {
	if es.logger != nil {
		es.logger.Debug(msg, args...)
	}
}

func (es EventStore) logError(msg string, err error) {
	if es.logger != nil {
		es.logger.Error(msg, logAttrError, err.Error())
	}
}
