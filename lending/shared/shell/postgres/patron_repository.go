package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/publiclibrary/lending-go/eventstore"
	"github.com/publiclibrary/lending-go/lending/core"
)

const (
	dialectPostgres = "postgres"
	tablePatrons    = "patrons"
	tableHolds      = "holds"
	tableCheckouts  = "checkouts"
	tableBooks      = "books"
	tableDailySheet = "daily_sheets"
)

// PatronRepository persists the Patron aggregate with its holds and
// checkouts in PostgreSQL.
type PatronRepository struct {
	pool *pgxpool.Pool
}

// NewPatronRepository creates a PatronRepository on the given pool.
func NewPatronRepository(pool *pgxpool.Pool) *PatronRepository {
	return &PatronRepository{pool: pool}
}

// Get loads a patron with all owned holds and checkouts. Fails with
// core.NotFoundError when the id is unknown.
func (r *PatronRepository) Get(ctx context.Context, id uuid.UUID) (core.Patron, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(tablePatrons).
		Select("patron_type", "version").
		Where(goqu.C("id").Eq(id.String())).
		ToSQL()
	if err != nil {
		return core.Patron{}, err
	}

	var patronType string
	var version int64

	if err = r.pool.QueryRow(ctx, query).Scan(&patronType, &version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.Patron{}, core.NewNotFoundError("patron", id)
		}

		return core.Patron{}, fmt.Errorf("loading patron: %w", err)
	}

	patron := core.Patron{
		ID:         id,
		PatronType: core.PatronType(patronType),
		Version:    uint(version),
	}

	if patron.Holds, err = r.loadHolds(ctx, id); err != nil {
		return core.Patron{}, err
	}

	if patron.Checkouts, err = r.loadCheckouts(ctx, id); err != nil {
		return core.Patron{}, err
	}

	return patron, nil
}

// Save upserts the patron together with its child collections in one
// transaction. A stale version fails with eventstore.ErrConcurrencyConflict.
func (r *PatronRepository) Save(ctx context.Context, patron core.Patron) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err = r.savePatronRow(ctx, tx, patron); err != nil {
		return err
	}

	if err = r.saveHolds(ctx, tx, patron); err != nil {
		return err
	}

	if err = r.saveCheckouts(ctx, tx, patron); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// FindWithOpenWork returns all patrons owning at least one ACTIVE hold
// or ACTIVE checkout, fully loaded. This is the sweep's work list.
func (r *PatronRepository) FindWithOpenWork(ctx context.Context) ([]core.Patron, error) {
	holdsQuery := goqu.Dialect(dialectPostgres).
		From(tableHolds).
		Select(goqu.L("patron_id::text")).
		Where(goqu.C("status").Eq(string(core.HoldStatusActive)))

	checkoutsQuery := goqu.Dialect(dialectPostgres).
		From(tableCheckouts).
		Select(goqu.L("patron_id::text")).
		Where(goqu.C("status").Eq(string(core.CheckoutStatusActive)))

	query, _, err := holdsQuery.Union(checkoutsQuery).ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing patrons with open work: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID

	for rows.Next() {
		var raw string
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}

		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing patron id %q: %w", raw, parseErr)
		}

		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	patrons := make([]core.Patron, 0, len(ids))

	for _, id := range ids {
		patron, getErr := r.Get(ctx, id)
		if getErr != nil {
			return nil, getErr
		}

		patrons = append(patrons, patron)
	}

	return patrons, nil
}

func (r *PatronRepository) savePatronRow(ctx context.Context, tx pgx.Tx, patron core.Patron) error {
	if patron.Version == 0 {
		query, _, err := goqu.Dialect(dialectPostgres).
			Insert(tablePatrons).
			Rows(goqu.Record{
				"id":          patron.ID.String(),
				"patron_type": string(patron.PatronType),
				"version":     1,
			}).
			ToSQL()
		if err != nil {
			return err
		}

		if _, err = tx.Exec(ctx, query); err != nil {
			return fmt.Errorf("inserting patron: %w", err)
		}

		return nil
	}

	query, _, err := goqu.Dialect(dialectPostgres).
		Update(tablePatrons).
		Set(goqu.Record{
			"patron_type": string(patron.PatronType),
			"version":     goqu.L("version + 1"),
		}).
		Where(
			goqu.C("id").Eq(patron.ID.String()),
			goqu.C("version").Eq(patron.Version),
		).
		ToSQL()
	if err != nil {
		return err
	}

	result, err := tx.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("updating patron: %w", err)
	}

	if result.RowsAffected() == 0 {
		return eventstore.ErrConcurrencyConflict
	}

	return nil
}

func (r *PatronRepository) saveHolds(ctx context.Context, tx pgx.Tx, patron core.Patron) error {
	deleteQuery, _, err := goqu.Dialect(dialectPostgres).
		Delete(tableHolds).
		Where(goqu.C("patron_id").Eq(patron.ID.String())).
		ToSQL()
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, deleteQuery); err != nil {
		return fmt.Errorf("deleting holds: %w", err)
	}

	if len(patron.Holds) == 0 {
		return nil
	}

	records := make([]any, 0, len(patron.Holds))

	for _, hold := range patron.Holds {
		records = append(records, goqu.Record{
			"id":           hold.ID.String(),
			"patron_id":    patron.ID.String(),
			"book_id":      hold.BookID.String(),
			"branch_id":    hold.BranchID.String(),
			"hold_type":    string(hold.HoldType),
			"status":       string(hold.Status),
			"requested_at": hold.RequestedAt,
			"expires_on":   hold.ExpiresOn,
		})
	}

	insertQuery, _, err := goqu.Dialect(dialectPostgres).
		Insert(tableHolds).
		Rows(records...).
		ToSQL()
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, insertQuery); err != nil {
		return fmt.Errorf("inserting holds: %w", err)
	}

	return nil
}

func (r *PatronRepository) saveCheckouts(ctx context.Context, tx pgx.Tx, patron core.Patron) error {
	deleteQuery, _, err := goqu.Dialect(dialectPostgres).
		Delete(tableCheckouts).
		Where(goqu.C("patron_id").Eq(patron.ID.String())).
		ToSQL()
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, deleteQuery); err != nil {
		return fmt.Errorf("deleting checkouts: %w", err)
	}

	if len(patron.Checkouts) == 0 {
		return nil
	}

	records := make([]any, 0, len(patron.Checkouts))

	for _, checkout := range patron.Checkouts {
		records = append(records, goqu.Record{
			"id":             checkout.ID.String(),
			"patron_id":      patron.ID.String(),
			"book_id":        checkout.BookID.String(),
			"branch_id":      checkout.BranchID.String(),
			"checked_out_at": checkout.CheckedOutAt,
			"status":         string(checkout.Status),
			"due_on":         checkout.DueOn,
			"returned_at":    checkout.ReturnedAt,
		})
	}

	insertQuery, _, err := goqu.Dialect(dialectPostgres).
		Insert(tableCheckouts).
		Rows(records...).
		ToSQL()
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, insertQuery); err != nil {
		return fmt.Errorf("inserting checkouts: %w", err)
	}

	return nil
}

func (r *PatronRepository) loadHolds(ctx context.Context, patronID uuid.UUID) ([]core.Hold, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(tableHolds).
		Select(
			goqu.L("id::text"),
			goqu.L("book_id::text"),
			goqu.L("branch_id::text"),
			goqu.C("hold_type"),
			goqu.C("status"),
			goqu.C("requested_at"),
			goqu.C("expires_on"),
		).
		Where(goqu.C("patron_id").Eq(patronID.String())).
		Order(goqu.I("requested_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading holds: %w", err)
	}
	defer rows.Close()

	var holds []core.Hold

	for rows.Next() {
		var (
			rawID, rawBookID, rawBranchID string
			holdType, status              string
			requestedAt                   time.Time
			expiresOn                     *time.Time
		)

		if err = rows.Scan(&rawID, &rawBookID, &rawBranchID, &holdType, &status, &requestedAt, &expiresOn); err != nil {
			return nil, err
		}

		hold := core.Hold{
			HoldType:    core.HoldType(holdType),
			Status:      core.HoldStatus(status),
			RequestedAt: requestedAt,
			ExpiresOn:   expiresOn,
		}

		if hold.ID, err = uuid.Parse(rawID); err != nil {
			return nil, err
		}
		if hold.BookID, err = uuid.Parse(rawBookID); err != nil {
			return nil, err
		}
		if hold.BranchID, err = uuid.Parse(rawBranchID); err != nil {
			return nil, err
		}

		holds = append(holds, hold)
	}

	return holds, rows.Err()
}

func (r *PatronRepository) loadCheckouts(ctx context.Context, patronID uuid.UUID) ([]core.Checkout, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(tableCheckouts).
		Select(
			goqu.L("id::text"),
			goqu.L("book_id::text"),
			goqu.L("branch_id::text"),
			goqu.C("checked_out_at"),
			goqu.C("status"),
			goqu.C("due_on"),
			goqu.C("returned_at"),
		).
		Where(goqu.C("patron_id").Eq(patronID.String())).
		Order(goqu.I("checked_out_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading checkouts: %w", err)
	}
	defer rows.Close()

	var checkouts []core.Checkout

	for rows.Next() {
		var (
			rawID, rawBookID, rawBranchID string
			checkedOutAt, dueOn           time.Time
			status                        string
			returnedAt                    *time.Time
		)

		if err = rows.Scan(&rawID, &rawBookID, &rawBranchID, &checkedOutAt, &status, &dueOn, &returnedAt); err != nil {
			return nil, err
		}

		checkout := core.Checkout{
			CheckedOutAt: checkedOutAt,
			Status:       core.CheckoutStatus(status),
			DueOn:        dueOn,
			ReturnedAt:   returnedAt,
		}

		if checkout.ID, err = uuid.Parse(rawID); err != nil {
			return nil, err
		}
		if checkout.BookID, err = uuid.Parse(rawBookID); err != nil {
			return nil, err
		}
		if checkout.BranchID, err = uuid.Parse(rawBranchID); err != nil {
			return nil, err
		}

		checkouts = append(checkouts, checkout)
	}

	return checkouts, rows.Err()
}
