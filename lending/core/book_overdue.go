package core

import (
	"time"
)

// BookOverdueEventType is the event type identifier.
const BookOverdueEventType = "BookOverdue"

// BookOverdue represents when a checkout passes its due date and is
// marked overdue by the daily sweep.
type BookOverdue struct {
	EventType    EventTypeString
	CheckoutID   CheckoutIDString
	PatronID     PatronIDString
	PatronType   string
	BookID       BookIDString
	BranchID     BranchIDString
	CheckedOutAt time.Time
	DueOn        time.Time
	OccurredAt   OccurredAtTS
}

// BuildBookOverdue creates a new BookOverdue event from the owning
// patron and the overdue checkout.
func BuildBookOverdue(patron Patron, checkout Checkout, occurredAt time.Time) BookOverdue {
	return BookOverdue{
		EventType:    BookOverdueEventType,
		CheckoutID:   checkout.ID.String(),
		PatronID:     patron.ID.String(),
		PatronType:   string(patron.PatronType),
		BookID:       checkout.BookID.String(),
		BranchID:     checkout.BranchID.String(),
		CheckedOutAt: checkout.CheckedOutAt,
		DueOn:        checkout.DueOn,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookOverdue) IsEventType() string {
	return BookOverdueEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookOverdue) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookOverdue) IsErrorEvent() bool {
	return false
}
