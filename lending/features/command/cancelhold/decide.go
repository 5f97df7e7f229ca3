package cancelhold

import (
	"github.com/publiclibrary/lending-go/lending/core"
)

// Decide implements the business logic determining whether a hold can
// be cancelled. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A patron with PatronID owning a hold with HoldID
//	WHEN: CancelHold command is received
//	THEN: HoldCancelled event is generated and the hold becomes CANCELLED
//	ERROR: "hold" if the patron owns no such hold
//	ERROR: "expired_hold" if the hold is expired or past its expiry date
//	ERROR: "checked_out" if the hold was already converted into a checkout
func Decide(patron core.Patron, command Command) core.DecisionResult {
	event, err := patron.CancelHold(command.HoldID, command.OccurredAt)
	if err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision(patron, event)
}
