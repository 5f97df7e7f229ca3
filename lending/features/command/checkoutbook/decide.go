package checkoutbook

import (
	"github.com/publiclibrary/lending-go/lending/core"
)

// Decide implements the business logic determining whether a patron may
// check out a book. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A patron with PatronID and a book with BookID
//	WHEN: CheckoutBook command is received
//	THEN: BookCheckedOut event is generated and an ACTIVE Checkout due
//	      after the policy's checkout period is added; if the patron has
//	      an ACTIVE hold on the book it becomes CHECKED_OUT
//	ERROR: "restricted" if the book is restricted and the patron is regular
//
// A hold is not required for the checkout, a walk-in checkout is fine.
// Only an ACTIVE hold transitions: an expired or cancelled hold on the
// same book stays untouched.
func Decide(patron core.Patron, book core.Book, command Command, policy core.LendingPolicy) core.DecisionResult {
	if book.BookType == core.BookTypeRestricted && patron.PatronType == core.PatronTypeRegular {
		return core.ErrorDecision(
			core.NewValidationError(core.ReasonRestricted, "regular patrons cannot check out restricted books"),
		)
	}

	if hold := activeHoldOnBook(&patron, command); hold != nil {
		hold.Checkout()
	}

	dueOn := core.DayOf(command.OccurredAt).AddDate(0, 0, policy.CheckoutPeriodDays)
	checkout := core.BuildCheckout(command.BookID, command.BranchID, command.OccurredAt, dueOn)
	patron.AddCheckout(checkout)

	return core.SuccessDecision(patron, core.BuildBookCheckedOut(patron, checkout, command.OccurredAt))
}

func activeHoldOnBook(patron *core.Patron, command Command) *core.Hold {
	for i := range patron.Holds {
		hold := &patron.Holds[i]
		if hold.BookID == command.BookID && hold.IsActive() {
			return hold
		}
	}

	return nil
}
