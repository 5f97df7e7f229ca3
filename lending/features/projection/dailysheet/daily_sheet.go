package dailysheet

import (
	"context"
	"time"

	"github.com/publiclibrary/lending-go/lending/core"
)

// Row statuses of the daily sheet, denormalized copies of the hold and
// checkout lifecycle states.
const (
	HoldRowActive     = "ACTIVE"
	HoldRowExpired    = "EXPIRED"
	HoldRowCancelled  = "CANCELLED"
	HoldRowCheckedOut = "CHECKED_OUT"

	CheckoutRowActive   = "ACTIVE"
	CheckoutRowReturned = "RETURNED"
	CheckoutRowOverdue  = "OVERDUE"
)

// DailySheet is one row of the read model. A row tracks either a hold
// (HoldID set) or a checkout (CheckoutID set), never both. Identifiers
// stay strings here: the sheet copies what the events carry and is
// never joined back onto the aggregates.
type DailySheet struct {
	ID         string `db:"id"`
	PatronID   string `db:"patron_id"`
	PatronType string `db:"patron_type"`
	BookID     string `db:"book_id"`
	BranchID   string `db:"branch_id"`

	HoldID          string     `db:"hold_id"`
	HoldStatus      string     `db:"hold_status"`
	HoldRequestedAt *time.Time `db:"hold_requested_at"`
	HoldExpiresOn   *time.Time `db:"hold_expires_on"`

	CheckoutID         string     `db:"checkout_id"`
	CheckoutStatus     string     `db:"checkout_status"`
	CheckedOutAt       *time.Time `db:"checked_out_at"`
	CheckoutDueOn      *time.Time `db:"checkout_due_on"`
	CheckoutReturnedAt *time.Time `db:"checkout_returned_at"`
	CheckoutOverdueAt  *time.Time `db:"checkout_overdue_at"`

	UpdatedAt time.Time `db:"updated_at"`
}

// IsHoldRow reports whether this row tracks a hold.
func (s DailySheet) IsHoldRow() bool {
	return s.HoldID != ""
}

// Repository is the persistence port for the daily sheet rows. The
// lookup methods return the zero row and false when no row exists yet.
type Repository interface {
	FindForHold(ctx context.Context, patronID core.PatronIDString, holdID core.HoldIDString) (DailySheet, bool, error)
	FindForCheckout(ctx context.Context, patronID core.PatronIDString, checkoutID core.CheckoutIDString) (DailySheet, bool, error)
	Upsert(ctx context.Context, sheet DailySheet) error

	// ExpiringHolds lists ACTIVE hold rows whose expiry date falls on
	// the given day; ExpiredHolds lists rows already in EXPIRED status.
	ExpiringHolds(ctx context.Context, on time.Time) ([]DailySheet, error)
	ExpiredHolds(ctx context.Context) ([]DailySheet, error)

	// CheckoutsToBeMarkedOverdue lists ACTIVE checkout rows due before
	// the given day; OverdueCheckouts lists rows already in OVERDUE status.
	CheckoutsToBeMarkedOverdue(ctx context.Context, on time.Time) ([]DailySheet, error)
	OverdueCheckouts(ctx context.Context) ([]DailySheet, error)
}
