package sweep

import (
	"time"

	"github.com/publiclibrary/lending-go/lending/core"
)

// SweepPatron applies the time-based transitions to one patron as of
// the given moment. This is a pure function with no side effects.
//
// Transitions:
//
//	ACTIVE hold past its expiry date    -> EXPIRED, raising HoldExpired
//	ACTIVE checkout past its due date   -> OVERDUE, raising BookOverdue
//
// Open-ended holds carry no expiry date and are never touched. A
// checkout already OVERDUE or RETURNED is not re-evaluated, so a single
// late checkout raises BookOverdue exactly once across repeated sweeps.
// Events are emitted holds first, then checkouts, in aggregate order.
func SweepPatron(patron core.Patron, now time.Time) core.DecisionResult {
	today := core.DayOf(now)
	var events []core.DomainEvent

	for i := range patron.Holds {
		if !patron.Holds[i].IsExpiredAsOf(today) {
			continue
		}

		event, err := patron.ExpireHold(patron.Holds[i].ID, now)
		if err != nil {
			return core.ErrorDecision(err)
		}

		events = append(events, event)
	}

	for i := range patron.Checkouts {
		if !patron.Checkouts[i].IsOverdueAsOf(today) {
			continue
		}

		event, err := patron.OverdueCheckout(patron.Checkouts[i].ID, now)
		if err != nil {
			return core.ErrorDecision(err)
		}

		events = append(events, event)
	}

	return core.SuccessDecision(patron, events...)
}
