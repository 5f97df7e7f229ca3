package placehold

import (
	"time"

	"github.com/publiclibrary/lending-go/lending/core"
)

const (
	maxActiveHoldsForRegularPatron = 5
	maxOverdueCheckoutsPerBranch   = 2
)

// Decide implements the business logic determining whether a patron may
// place a hold on a book. This is a pure function with no side effects -
// it takes the loaded aggregates and a command and returns the mutated
// patron plus the events to publish, or the rejection.
//
// Business Rules:
//
//	GIVEN: A patron with PatronID and a book with BookID
//	WHEN: PlaceHold command is received
//	THEN: HoldPlaced event is generated and the hold is added to the patron
//	ERROR: "restricted" if the book is restricted and the patron is regular
//	ERROR: "book" if the book is already on hold
//	ERROR: "hold_type" if a regular patron requests an open-ended hold
//	ERROR: "regular_patron_holds" if a regular patron already has 5 active holds
//	ERROR: "overdue_checkouts_in_branch" if the patron has more than 2 overdue checkouts at the branch
//
// The rules are checked in this order and the first violation wins.
func Decide(patron core.Patron, book core.Book, command Command, policy core.LendingPolicy) core.DecisionResult {
	if book.BookType == core.BookTypeRestricted && patron.PatronType == core.PatronTypeRegular {
		return core.ErrorDecision(
			core.NewValidationError(core.ReasonRestricted, "regular patrons cannot place holds on restricted books"),
		)
	}

	if book.Status == core.BookStatusOnHold {
		return core.ErrorDecision(
			core.NewValidationError(core.ReasonBookOnHold, "book is already on hold"),
		)
	}

	if command.HoldType == core.HoldTypeOpenEnded && patron.PatronType == core.PatronTypeRegular {
		return core.ErrorDecision(
			core.NewValidationError(core.ReasonHoldType, "regular patrons cannot place open-ended holds"),
		)
	}

	if patron.PatronType == core.PatronTypeRegular && patron.ActiveHoldCount() >= maxActiveHoldsForRegularPatron {
		return core.ErrorDecision(
			core.NewValidationError(core.ReasonRegularPatronHolds, "regular patrons cannot have more than 5 active holds"),
		)
	}

	if overdueCheckoutsAtBranch(patron, command) > maxOverdueCheckoutsPerBranch {
		return core.ErrorDecision(
			core.NewValidationError(core.ReasonOverdueCheckoutsInBranch, "patron has too many overdue checkouts at this branch"),
		)
	}

	hold := core.BuildHold(
		command.BookID,
		command.BranchID,
		command.HoldType,
		command.OccurredAt,
		expiresOnFor(command, policy),
	)

	if hold.HoldType == core.HoldTypeOpenEnded && hold.ExpiresOn != nil {
		return core.ErrorDecision(
			core.NewValidationError(core.ReasonOpenEndedExpiry, "open-ended holds must not carry an expiry date"),
		)
	}

	patron.AddHold(hold)

	return core.SuccessDecision(patron, core.BuildHoldPlaced(patron, hold, command.OccurredAt))
}

// overdueCheckoutsAtBranch counts the patron's checkouts at the
// command's branch whose due date lies before the command's day. A late
// return still counts here: the penalty clears when the rows age out,
// not the moment the book comes back.
func overdueCheckoutsAtBranch(patron core.Patron, command Command) int {
	today := core.DayOf(command.OccurredAt)
	count := 0

	for _, checkout := range patron.Checkouts {
		if checkout.BranchID == command.BranchID && checkout.DueOn.Before(today) {
			count++
		}
	}

	return count
}

// expiresOnFor computes the expiry date of the new hold: the command
// day plus the policy's hold expiry window for closed-ended holds, nil
// for open-ended holds.
func expiresOnFor(command Command, policy core.LendingPolicy) *time.Time {
	if command.HoldType != core.HoldTypeClosedEnded {
		return nil
	}

	expiresOn := core.DayOf(command.OccurredAt).AddDate(0, 0, policy.HoldExpiryDays)

	return &expiresOn
}
