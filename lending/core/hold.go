package core

import (
	"time"

	"github.com/google/uuid"
)

// HoldType distinguishes open-ended holds (no expiry, researchers only)
// from closed-ended holds (expire after the policy's hold expiry window).
type HoldType string

// The closed set of hold types.
const (
	HoldTypeOpenEnded   HoldType = "OPEN_ENDED"
	HoldTypeClosedEnded HoldType = "CLOSED_ENDED"
)

// HoldStatus is the lifecycle state of a Hold.
// EXPIRED, CHECKED_OUT and CANCELLED are terminal.
type HoldStatus string

// The closed set of hold statuses.
const (
	HoldStatusActive     HoldStatus = "ACTIVE"
	HoldStatusExpired    HoldStatus = "EXPIRED"
	HoldStatusCheckedOut HoldStatus = "CHECKED_OUT"
	HoldStatusCancelled  HoldStatus = "CANCELLED"
)

// Hold is a reservation placed by a patron on a book. It is owned by
// the Patron aggregate: all mutation goes through Patron methods so the
// resulting events attach to the correct patron stream.
type Hold struct {
	ID          uuid.UUID
	BookID      uuid.UUID
	BranchID    uuid.UUID
	HoldType    HoldType
	Status      HoldStatus
	RequestedAt time.Time
	ExpiresOn   *time.Time // nil only for open-ended holds
}

// BuildHold creates a new ACTIVE Hold with a generated id.
func BuildHold(
	bookID uuid.UUID,
	branchID uuid.UUID,
	holdType HoldType,
	requestedAt time.Time,
	expiresOn *time.Time,
) Hold {
	return Hold{
		ID:          uuid.New(),
		BookID:      bookID,
		BranchID:    branchID,
		HoldType:    holdType,
		Status:      HoldStatusActive,
		RequestedAt: requestedAt,
		ExpiresOn:   expiresOn,
	}
}

// Checkout transitions the hold to CHECKED_OUT. The owning checkout
// service raises BookCheckedOut separately, so no event originates here.
func (h *Hold) Checkout() {
	h.Status = HoldStatusCheckedOut
}

// Expire transitions the hold to EXPIRED.
func (h *Hold) Expire() {
	h.Status = HoldStatusExpired
}

// Cancel transitions the hold to CANCELLED. It fails with an
// "expired_hold" validation error when the hold is EXPIRED or past its
// expiry date, and with "checked_out" when the hold was checked out.
func (h *Hold) Cancel(today time.Time) error {
	if h.Status == HoldStatusExpired || (h.ExpiresOn != nil && h.ExpiresOn.Before(today)) {
		return NewValidationError(ReasonExpiredHold, "cannot cancel an expired hold")
	}

	if h.Status == HoldStatusCheckedOut {
		return NewValidationError(ReasonCheckedOut, "cannot cancel a checked out hold")
	}

	h.Status = HoldStatusCancelled

	return nil
}

// IsActive reports whether the hold is in ACTIVE status.
func (h Hold) IsActive() bool {
	return h.Status == HoldStatusActive
}

// IsExpiredAsOf reports whether an ACTIVE hold has passed its expiry
// date as of the given day. Open-ended holds never expire.
func (h Hold) IsExpiredAsOf(today time.Time) bool {
	return h.Status == HoldStatusActive && h.ExpiresOn != nil && h.ExpiresOn.Before(today)
}
