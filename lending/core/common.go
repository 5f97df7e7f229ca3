package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// PatronIDString represents a patron identifier.
type PatronIDString = string

// BookIDString represents a book identifier.
type BookIDString = string

// HoldIDString represents a hold identifier.
type HoldIDString = string

// CheckoutIDString represents a checkout identifier.
type CheckoutIDString = string

// BranchIDString represents a library branch identifier.
type BranchIDString = string

// ISBNString represents an ISBN identifier.
type ISBNString = string

// EventTypeString represents an event type identifier.
type EventTypeString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// DayOf truncates a timestamp to its calendar day in UTC.
// Expiry and due dates are date-only values, so all "before today"
// comparisons go through this normalization.
func DayOf(t time.Time) time.Time {
	u := t.UTC()

	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
