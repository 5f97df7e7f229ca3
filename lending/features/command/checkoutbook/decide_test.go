package checkoutbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/publiclibrary/lending-go/lending/core"
	"github.com/publiclibrary/lending-go/lending/features/command/checkoutbook"
	"github.com/publiclibrary/lending-go/testutil"
)

func Test_Decide_Success_ConvertsHoldIntoCheckout(t *testing.T) {
	// arrange
	patron := testutil.GivenRegularPatron()
	book := testutil.GivenCirculatingBook()
	branchID := uuid.New()
	now := time.Now()
	hold := testutil.GivenActiveHold(&patron, book.ID, branchID, now.Add(-time.Hour))

	command := checkoutbook.BuildCommand(patron.ID, book.ID, branchID, now)

	// act
	result := checkoutbook.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	require.NoError(t, result.HasError())
	assert.Equal(t, hold.ID, result.Patron.Holds[0].ID)
	assert.Equal(t, core.HoldStatusCheckedOut, result.Patron.Holds[0].Status)

	require.Len(t, result.Patron.Checkouts, 1)
	checkout := result.Patron.Checkouts[0]
	assert.Equal(t, book.ID, checkout.BookID)
	assert.Equal(t, core.CheckoutStatusActive, checkout.Status)
	assert.Equal(t, core.DayOf(now).AddDate(0, 0, core.DefaultCheckoutPeriodDays), checkout.DueOn)

	require.Len(t, result.Events, 1)
	checkedOut, ok := result.Events[0].(core.BookCheckedOut)
	require.True(t, ok)
	assert.Equal(t, checkout.ID.String(), checkedOut.CheckoutID)
	assert.Equal(t, book.ID.String(), checkedOut.BookID)
}

func Test_Decide_Success_CustomCheckoutPeriod(t *testing.T) {
	// arrange
	patron := testutil.GivenRegularPatron()
	book := testutil.GivenCirculatingBook()
	now := time.Now()
	testutil.GivenActiveHold(&patron, book.ID, uuid.New(), now)

	policy := core.LendingPolicy{HoldExpiryDays: 7, CheckoutPeriodDays: 14}
	command := checkoutbook.BuildCommand(patron.ID, book.ID, uuid.New(), now)

	// act
	result := checkoutbook.Decide(patron, book, command, policy)

	// assert
	require.NoError(t, result.HasError())
	assert.Equal(t, core.DayOf(now).AddDate(0, 0, 14), result.Patron.Checkouts[0].DueOn)
}

func Test_Decide_Error_RegularPatronOnRestrictedBook(t *testing.T) {
	// arrange
	patron := testutil.GivenRegularPatron()
	book := testutil.GivenRestrictedBook()
	now := time.Now()
	testutil.GivenActiveHold(&patron, book.ID, uuid.New(), now)

	command := checkoutbook.BuildCommand(patron.ID, book.ID, uuid.New(), now)

	// act
	result := checkoutbook.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	validationErr, ok := core.AsValidationError(result.HasError())
	require.True(t, ok)
	assert.Equal(t, core.ReasonRestricted, validationErr.Reason)
}

func Test_Decide_Success_WalkInCheckoutWithoutHold(t *testing.T) {
	// arrange
	patron := testutil.GivenRegularPatron()
	book := testutil.GivenCirculatingBook()
	now := time.Now()

	command := checkoutbook.BuildCommand(patron.ID, book.ID, uuid.New(), now)

	// act
	result := checkoutbook.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	require.NoError(t, result.HasError())
	assert.Empty(t, result.Patron.Holds)

	require.Len(t, result.Patron.Checkouts, 1)
	assert.Equal(t, core.CheckoutStatusActive, result.Patron.Checkouts[0].Status)

	require.Len(t, result.Events, 1)
	assert.Equal(t, core.BookCheckedOutEventType, result.Events[0].IsEventType())
}

func Test_Decide_Success_CancelledHoldStaysUntouched(t *testing.T) {
	// arrange
	patron := testutil.GivenRegularPatron()
	book := testutil.GivenCirculatingBook()
	now := time.Now()
	hold := testutil.GivenActiveHold(&patron, book.ID, uuid.New(), now)
	_, err := patron.CancelHold(hold.ID, now)
	require.NoError(t, err)

	command := checkoutbook.BuildCommand(patron.ID, book.ID, uuid.New(), now)

	// act
	result := checkoutbook.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	require.NoError(t, result.HasError())
	assert.Equal(t, core.HoldStatusCancelled, result.Patron.Holds[0].Status)
	require.Len(t, result.Patron.Checkouts, 1)
}
