package core

import (
	"time"
)

// BookCheckedOutEventType is the event type identifier.
const BookCheckedOutEventType = "BookCheckedOut"

// BookCheckedOut represents when a patron checks out a book.
type BookCheckedOut struct {
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

// BuildBookCheckedOut creates a new BookCheckedOut event from the
// owning patron and the new checkout.
func BuildBookCheckedOut(patron Patron, checkout Checkout, occurredAt time.Time) BookCheckedOut {
	return BookCheckedOut{
		EventType:    BookCheckedOutEventType,
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
func (e BookCheckedOut) IsEventType() string {
	return BookCheckedOutEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookCheckedOut) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookCheckedOut) IsErrorEvent() bool {
	return false
}
