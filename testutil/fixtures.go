package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/publiclibrary/lending-go/lending/core"
)

// GivenRegularPatron creates a regular patron aggregate.
func GivenRegularPatron() core.Patron {
	return core.BuildPatron(uuid.New(), core.PatronTypeRegular)
}

// GivenResearcherPatron creates a researcher patron aggregate.
func GivenResearcherPatron() core.Patron {
	return core.BuildPatron(uuid.New(), core.PatronTypeResearcher)
}

// GivenCirculatingBook creates an available circulating book.
func GivenCirculatingBook() core.Book {
	return core.BuildBook(uuid.New(), "978-0-13-468599-1", core.BookTypeCirculating)
}

// GivenRestrictedBook creates an available restricted book.
func GivenRestrictedBook() core.Book {
	return core.BuildBook(uuid.New(), "978-0-201-61622-4", core.BookTypeRestricted)
}

// GivenActiveHold adds an active closed-ended hold on a book to the
// patron and returns it.
func GivenActiveHold(patron *core.Patron, bookID uuid.UUID, branchID uuid.UUID, requestedAt time.Time) core.Hold {
	expiresOn := core.DayOf(requestedAt).AddDate(0, 0, core.DefaultHoldExpiryDays)
	hold := core.BuildHold(bookID, branchID, core.HoldTypeClosedEnded, requestedAt, &expiresOn)
	patron.AddHold(hold)

	return hold
}

// GivenOpenEndedHold adds an active open-ended hold on a book to the
// patron and returns it.
func GivenOpenEndedHold(patron *core.Patron, bookID uuid.UUID, branchID uuid.UUID, requestedAt time.Time) core.Hold {
	hold := core.BuildHold(bookID, branchID, core.HoldTypeOpenEnded, requestedAt, nil)
	patron.AddHold(hold)

	return hold
}

// GivenActiveCheckout adds an active checkout of a book to the patron
// and returns it.
func GivenActiveCheckout(patron *core.Patron, bookID uuid.UUID, branchID uuid.UUID, checkedOutAt time.Time) core.Checkout {
	dueOn := core.DayOf(checkedOutAt).AddDate(0, 0, core.DefaultCheckoutPeriodDays)
	checkout := core.BuildCheckout(bookID, branchID, checkedOutAt, dueOn)
	patron.AddCheckout(checkout)

	return checkout
}

// GivenOverdueCheckout adds a checkout whose due date already passed as
// of the given day to the patron and returns it. The checkout stays in
// ACTIVE status, as it would be before a sweep run.
func GivenOverdueCheckout(patron *core.Patron, bookID uuid.UUID, branchID uuid.UUID, today time.Time) core.Checkout {
	checkedOutAt := today.AddDate(0, 0, -core.DefaultCheckoutPeriodDays-5)
	dueOn := core.DayOf(today).AddDate(0, 0, -5)
	checkout := core.BuildCheckout(bookID, branchID, checkedOutAt, dueOn)
	patron.AddCheckout(checkout)

	return checkout
}
