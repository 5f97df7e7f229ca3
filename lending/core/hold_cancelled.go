package core

import (
	"time"
)

// HoldCancelledEventType is the event type identifier.
const HoldCancelledEventType = "HoldCancelled"

// HoldCancelled represents when a patron cancels a hold they placed.
type HoldCancelled struct {
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

// BuildHoldCancelled creates a new HoldCancelled event from the owning
// patron and the cancelled hold.
func BuildHoldCancelled(patron Patron, hold Hold, occurredAt time.Time) HoldCancelled {
	return HoldCancelled{
		EventType:   HoldCancelledEventType,
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
func (e HoldCancelled) IsEventType() string {
	return HoldCancelledEventType
}

// HasOccurredAt returns when this event occurred.
func (e HoldCancelled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e HoldCancelled) IsErrorEvent() bool {
	return false
}
