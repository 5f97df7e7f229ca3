package core

import (
	"time"
)

// BookReturnedEventType is the event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned represents when a patron returns a checked-out book.
type BookReturned struct {
	EventType    EventTypeString
	CheckoutID   CheckoutIDString
	PatronID     PatronIDString
	PatronType   string
	BookID       BookIDString
	BranchID     BranchIDString
	CheckedOutAt time.Time
	DueOn        time.Time
	ReturnedAt   time.Time
	OccurredAt   OccurredAtTS
}

// BuildBookReturned creates a new BookReturned event from the owning
// patron and the returned checkout.
func BuildBookReturned(patron Patron, checkout Checkout, occurredAt time.Time) BookReturned {
	var returnedAt time.Time
	if checkout.ReturnedAt != nil {
		returnedAt = *checkout.ReturnedAt
	}

	return BookReturned{
		EventType:    BookReturnedEventType,
		CheckoutID:   checkout.ID.String(),
		PatronID:     patron.ID.String(),
		PatronType:   string(patron.PatronType),
		BookID:       checkout.BookID.String(),
		BranchID:     checkout.BranchID.String(),
		CheckedOutAt: checkout.CheckedOutAt,
		DueOn:        checkout.DueOn,
		ReturnedAt:   returnedAt,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReturned) IsEventType() string {
	return BookReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReturned) IsErrorEvent() bool {
	return false
}
