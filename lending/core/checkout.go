package core

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutStatus is the lifecycle state of a Checkout. A RETURNED
// checkout is never re-evaluated for overdue; an OVERDUE checkout can
// still be returned, which clears it to RETURNED.
type CheckoutStatus string

// The closed set of checkout statuses.
const (
	CheckoutStatusActive   CheckoutStatus = "ACTIVE"
	CheckoutStatusReturned CheckoutStatus = "RETURNED"
	CheckoutStatusOverdue  CheckoutStatus = "OVERDUE"
)

// Checkout is an active loan of a book to a patron. It is owned by the
// Patron aggregate and only mutated through it.
type Checkout struct {
	ID           uuid.UUID
	BookID       uuid.UUID
	BranchID     uuid.UUID
	CheckedOutAt time.Time
	Status       CheckoutStatus
	DueOn        time.Time
	ReturnedAt   *time.Time
}

// BuildCheckout creates a new ACTIVE Checkout with a generated id.
func BuildCheckout(
	bookID uuid.UUID,
	branchID uuid.UUID,
	checkedOutAt time.Time,
	dueOn time.Time,
) Checkout {
	return Checkout{
		ID:           uuid.New(),
		BookID:       bookID,
		BranchID:     branchID,
		CheckedOutAt: checkedOutAt,
		Status:       CheckoutStatusActive,
		DueOn:        dueOn,
	}
}

// Return transitions the checkout to RETURNED and records the return time.
func (c *Checkout) Return(returnedAt time.Time) {
	c.Status = CheckoutStatusReturned
	c.ReturnedAt = &returnedAt
}

// Overdue transitions an ACTIVE checkout to OVERDUE. It fails with a
// "checkout" validation error when the checkout is already closed or
// marked, a RETURNED checkout is never re-evaluated.
func (c *Checkout) Overdue() error {
	if c.Status != CheckoutStatusActive {
		return NewValidationError(ReasonMissingCheckout, "cannot mark a closed checkout overdue")
	}

	c.Status = CheckoutStatusOverdue

	return nil
}

// IsOverdueAsOf reports whether an ACTIVE checkout has passed its due
// date as of the given day.
func (c Checkout) IsOverdueAsOf(today time.Time) bool {
	return c.Status == CheckoutStatusActive && c.DueOn.Before(today)
}

// IsOpen reports whether the checkout can still be returned.
func (c Checkout) IsOpen() bool {
	return c.Status == CheckoutStatusActive || c.Status == CheckoutStatusOverdue
}
