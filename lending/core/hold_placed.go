package core

import (
	"time"
)

// HoldPlacedEventType is the event type identifier.
const HoldPlacedEventType = "HoldPlaced"

// HoldPlaced represents when a patron places a hold on a book.
type HoldPlaced struct {
	EventType   EventTypeString
	PatronID    PatronIDString
	PatronType  string
	HoldID      HoldIDString
	BookID      BookIDString
	BranchID    BranchIDString
	HoldType    string
	RequestedAt time.Time
	ExpiresOn   *time.Time
	OccurredAt  OccurredAtTS
}

// BuildHoldPlaced creates a new HoldPlaced event from the owning patron
// and the just-added hold.
func BuildHoldPlaced(patron Patron, hold Hold, occurredAt time.Time) HoldPlaced {
	return HoldPlaced{
		EventType:   HoldPlacedEventType,
		PatronID:    patron.ID.String(),
		PatronType:  string(patron.PatronType),
		HoldID:      hold.ID.String(),
		BookID:      hold.BookID.String(),
		BranchID:    hold.BranchID.String(),
		HoldType:    string(hold.HoldType),
		RequestedAt: hold.RequestedAt,
		ExpiresOn:   hold.ExpiresOn,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e HoldPlaced) IsEventType() string {
	return HoldPlacedEventType
}

// HasOccurredAt returns when this event occurred.
func (e HoldPlaced) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e HoldPlaced) IsErrorEvent() bool {
	return false
}
