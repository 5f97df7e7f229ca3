package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/publiclibrary/lending-go/lending/core"
	"github.com/publiclibrary/lending-go/lending/features/projection/dailysheet"
)

var dailySheetColumns = []any{
	goqu.L("id::text"),
	goqu.C("patron_id"),
	goqu.C("patron_type"),
	goqu.C("book_id"),
	goqu.C("branch_id"),
	goqu.C("hold_id"),
	goqu.C("hold_status"),
	goqu.C("hold_requested_at"),
	goqu.C("hold_expires_on"),
	goqu.C("checkout_id"),
	goqu.C("checkout_status"),
	goqu.C("checked_out_at"),
	goqu.C("checkout_due_on"),
	goqu.C("checkout_returned_at"),
	goqu.C("checkout_overdue_at"),
	goqu.C("updated_at"),
}

// DailySheetRepository persists the daily sheet read model in PostgreSQL.
type DailySheetRepository struct {
	pool *pgxpool.Pool
}

// NewDailySheetRepository creates a DailySheetRepository on the given pool.
func NewDailySheetRepository(pool *pgxpool.Pool) *DailySheetRepository {
	return &DailySheetRepository{pool: pool}
}

// FindForHold looks up the row tracking one hold.
func (r *DailySheetRepository) FindForHold(
	ctx context.Context,
	patronID core.PatronIDString,
	holdID core.HoldIDString,
) (dailysheet.DailySheet, bool, error) {
	return r.findOne(ctx, goqu.Ex{"patron_id": patronID, "hold_id": holdID})
}

// FindForCheckout looks up the row tracking one checkout.
func (r *DailySheetRepository) FindForCheckout(
	ctx context.Context,
	patronID core.PatronIDString,
	checkoutID core.CheckoutIDString,
) (dailysheet.DailySheet, bool, error) {
	return r.findOne(ctx, goqu.Ex{"patron_id": patronID, "checkout_id": checkoutID})
}

// Upsert stores the row, keyed by its surrogate id.
func (r *DailySheetRepository) Upsert(ctx context.Context, sheet dailysheet.DailySheet) error {
	record := goqu.Record{
		"id":                   sheet.ID,
		"patron_id":            sheet.PatronID,
		"patron_type":          sheet.PatronType,
		"book_id":              sheet.BookID,
		"branch_id":            sheet.BranchID,
		"hold_id":              sheet.HoldID,
		"hold_status":          sheet.HoldStatus,
		"hold_requested_at":    sheet.HoldRequestedAt,
		"hold_expires_on":      sheet.HoldExpiresOn,
		"checkout_id":          sheet.CheckoutID,
		"checkout_status":      sheet.CheckoutStatus,
		"checked_out_at":       sheet.CheckedOutAt,
		"checkout_due_on":      sheet.CheckoutDueOn,
		"checkout_returned_at": sheet.CheckoutReturnedAt,
		"checkout_overdue_at":  sheet.CheckoutOverdueAt,
		"updated_at":           sheet.UpdatedAt,
	}

	update := goqu.Record{}
	for column, value := range record {
		if column == "id" {
			continue
		}
		update[column] = value
	}

	query, _, err := goqu.Dialect(dialectPostgres).
		Insert(tableDailySheet).
		Rows(record).
		OnConflict(goqu.DoUpdate("id", update)).
		ToSQL()
	if err != nil {
		return err
	}

	if _, err = r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("upserting daily sheet row: %w", err)
	}

	return nil
}

// ExpiringHolds lists ACTIVE hold rows whose expiry date falls on the given day.
func (r *DailySheetRepository) ExpiringHolds(ctx context.Context, on time.Time) ([]dailysheet.DailySheet, error) {
	day := core.DayOf(on)

	return r.findAll(ctx, goqu.And(
		goqu.C("hold_status").Eq(dailysheet.HoldRowActive),
		goqu.C("hold_expires_on").Gte(day),
		goqu.C("hold_expires_on").Lt(day.AddDate(0, 0, 1)),
	))
}

// ExpiredHolds lists rows already in EXPIRED status.
func (r *DailySheetRepository) ExpiredHolds(ctx context.Context) ([]dailysheet.DailySheet, error) {
	return r.findAll(ctx, goqu.C("hold_status").Eq(dailysheet.HoldRowExpired))
}

// CheckoutsToBeMarkedOverdue lists ACTIVE checkout rows due before the given day.
func (r *DailySheetRepository) CheckoutsToBeMarkedOverdue(ctx context.Context, on time.Time) ([]dailysheet.DailySheet, error) {
	return r.findAll(ctx, goqu.And(
		goqu.C("checkout_status").Eq(dailysheet.CheckoutRowActive),
		goqu.C("checkout_due_on").Lt(core.DayOf(on)),
	))
}

// OverdueCheckouts lists rows already in OVERDUE status.
func (r *DailySheetRepository) OverdueCheckouts(ctx context.Context) ([]dailysheet.DailySheet, error) {
	return r.findAll(ctx, goqu.C("checkout_status").Eq(dailysheet.CheckoutRowOverdue))
}

func (r *DailySheetRepository) findOne(ctx context.Context, where goqu.Ex) (dailysheet.DailySheet, bool, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(tableDailySheet).
		Select(dailySheetColumns...).
		Where(where).
		ToSQL()
	if err != nil {
		return dailysheet.DailySheet{}, false, err
	}

	sheet, err := scanDailySheet(r.pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dailysheet.DailySheet{}, false, nil
		}

		return dailysheet.DailySheet{}, false, fmt.Errorf("loading daily sheet row: %w", err)
	}

	return sheet, true, nil
}

func (r *DailySheetRepository) findAll(ctx context.Context, where goqu.Expression) ([]dailysheet.DailySheet, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(tableDailySheet).
		Select(dailySheetColumns...).
		Where(where).
		Order(goqu.I("updated_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing daily sheet rows: %w", err)
	}
	defer rows.Close()

	var sheets []dailysheet.DailySheet

	for rows.Next() {
		sheet, scanErr := scanDailySheet(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		sheets = append(sheets, sheet)
	}

	return sheets, rows.Err()
}

func scanDailySheet(row pgx.Row) (dailysheet.DailySheet, error) {
	var sheet dailysheet.DailySheet

	err := row.Scan(
		&sheet.ID,
		&sheet.PatronID,
		&sheet.PatronType,
		&sheet.BookID,
		&sheet.BranchID,
		&sheet.HoldID,
		&sheet.HoldStatus,
		&sheet.HoldRequestedAt,
		&sheet.HoldExpiresOn,
		&sheet.CheckoutID,
		&sheet.CheckoutStatus,
		&sheet.CheckedOutAt,
		&sheet.CheckoutDueOn,
		&sheet.CheckoutReturnedAt,
		&sheet.CheckoutOverdueAt,
		&sheet.UpdatedAt,
	)
	if err != nil {
		return dailysheet.DailySheet{}, err
	}

	return sheet, nil
}
