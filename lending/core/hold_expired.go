package core

import (
	"time"
)

// HoldExpiredEventType is the event type identifier.
const HoldExpiredEventType = "HoldExpired"

// HoldExpired represents when a hold placed by a patron passes its
// expiry date and is expired by the daily sweep.
type HoldExpired struct {
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

// BuildHoldExpired creates a new HoldExpired event from the owning
// patron and the expired hold.
func BuildHoldExpired(patron Patron, hold Hold, occurredAt time.Time) HoldExpired {
	return HoldExpired{
		EventType:   HoldExpiredEventType,
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
func (e HoldExpired) IsEventType() string {
	return HoldExpiredEventType
}

// HasOccurredAt returns when this event occurred.
func (e HoldExpired) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e HoldExpired) IsErrorEvent() bool {
	return false
}
