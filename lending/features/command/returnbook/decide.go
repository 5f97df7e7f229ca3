package returnbook

import (
	"github.com/publiclibrary/lending-go/lending/core"
)

// Decide implements the business logic determining whether a book can
// be returned. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A patron with PatronID owning an open checkout of BookID
//	WHEN: ReturnBook command is received
//	THEN: BookReturned event is generated and the checkout becomes RETURNED
//	ERROR: "checkout" if the patron has no open checkout of the book
//
// A checkout already swept to OVERDUE can still be returned.
func Decide(patron core.Patron, command Command) core.DecisionResult {
	event, err := patron.ReturnBook(command.BookID, command.OccurredAt)
	if err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision(patron, event)
}
