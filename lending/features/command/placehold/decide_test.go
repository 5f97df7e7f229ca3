package placehold_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/publiclibrary/lending-go/lending/core"
	"github.com/publiclibrary/lending-go/lending/features/command/placehold"
	"github.com/publiclibrary/lending-go/testutil"
)

func Test_Decide_Success_ClosedEndedHold(t *testing.T) {
	// arrange
	patron := testutil.GivenRegularPatron()
	book := testutil.GivenCirculatingBook()
	branchID := uuid.New()
	now := time.Now()

	command := placehold.BuildCommand(patron.ID, book.ID, branchID, core.HoldTypeClosedEnded, now)

	// act
	result := placehold.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Patron.Holds, 1)

	hold := result.Patron.Holds[0]
	assert.Equal(t, book.ID, hold.BookID)
	assert.Equal(t, branchID, hold.BranchID)
	assert.Equal(t, core.HoldStatusActive, hold.Status)
	require.NotNil(t, hold.ExpiresOn)
	assert.Equal(t, core.DayOf(now).AddDate(0, 0, core.DefaultHoldExpiryDays), *hold.ExpiresOn)

	require.True(t, result.HasEventsToPublish())
	require.Len(t, result.Events, 1)
	placed, ok := result.Events[0].(core.HoldPlaced)
	require.True(t, ok)
	assert.Equal(t, patron.ID.String(), placed.PatronID)
	assert.Equal(t, hold.ID.String(), placed.HoldID)
}

func Test_Decide_Success_OpenEndedHoldByResearcher(t *testing.T) {
	// arrange
	patron := testutil.GivenResearcherPatron()
	book := testutil.GivenCirculatingBook()
	now := time.Now()

	command := placehold.BuildCommand(patron.ID, book.ID, uuid.New(), core.HoldTypeOpenEnded, now)

	// act
	result := placehold.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Patron.Holds, 1)
	assert.Nil(t, result.Patron.Holds[0].ExpiresOn)
}

func Test_Decide_Success_ResearcherOnRestrictedBook(t *testing.T) {
	// arrange
	patron := testutil.GivenResearcherPatron()
	book := testutil.GivenRestrictedBook()
	now := time.Now()

	command := placehold.BuildCommand(patron.ID, book.ID, uuid.New(), core.HoldTypeClosedEnded, now)

	// act
	result := placehold.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	require.NoError(t, result.HasError())
	assert.Len(t, result.Patron.Holds, 1)
}

func Test_Decide_Success_ResearcherAboveRegularHoldLimit(t *testing.T) {
	// arrange
	patron := testutil.GivenResearcherPatron()
	now := time.Now()
	for i := 0; i < 7; i++ {
		testutil.GivenActiveHold(&patron, uuid.New(), uuid.New(), now)
	}

	book := testutil.GivenCirculatingBook()
	command := placehold.BuildCommand(patron.ID, book.ID, uuid.New(), core.HoldTypeClosedEnded, now)

	// act
	result := placehold.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	require.NoError(t, result.HasError())
	assert.Len(t, result.Patron.Holds, 8)
}

func Test_Decide_Error_RegularPatronOnRestrictedBook(t *testing.T) {
	// arrange
	patron := testutil.GivenRegularPatron()
	book := testutil.GivenRestrictedBook()

	command := placehold.BuildCommand(patron.ID, book.ID, uuid.New(), core.HoldTypeClosedEnded, time.Now())

	// act
	result := placehold.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	assertRejectedWithReason(t, result, core.ReasonRestricted)
}

func Test_Decide_Error_BookAlreadyOnHold(t *testing.T) {
	// arrange
	patron := testutil.GivenRegularPatron()
	book := testutil.GivenCirculatingBook()
	book.MarkOnHold()

	command := placehold.BuildCommand(patron.ID, book.ID, uuid.New(), core.HoldTypeClosedEnded, time.Now())

	// act
	result := placehold.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	assertRejectedWithReason(t, result, core.ReasonBookOnHold)
}

func Test_Decide_Success_HoldOnCheckedOutBookQueues(t *testing.T) {
	// arrange
	patron := testutil.GivenRegularPatron()
	book := testutil.GivenCirculatingBook()
	book.MarkCheckedOut()

	command := placehold.BuildCommand(patron.ID, book.ID, uuid.New(), core.HoldTypeClosedEnded, time.Now())

	// act
	result := placehold.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Patron.Holds, 1)
	assert.Equal(t, core.HoldStatusActive, result.Patron.Holds[0].Status)
}

func Test_Decide_Error_RegularPatronOpenEndedHold(t *testing.T) {
	// arrange
	patron := testutil.GivenRegularPatron()
	book := testutil.GivenCirculatingBook()

	command := placehold.BuildCommand(patron.ID, book.ID, uuid.New(), core.HoldTypeOpenEnded, time.Now())

	// act
	result := placehold.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	assertRejectedWithReason(t, result, core.ReasonHoldType)
}

func Test_Decide_Error_RegularPatronAtHoldLimit(t *testing.T) {
	// arrange
	patron := testutil.GivenRegularPatron()
	now := time.Now()
	for i := 0; i < 5; i++ {
		testutil.GivenActiveHold(&patron, uuid.New(), uuid.New(), now)
	}

	book := testutil.GivenCirculatingBook()
	command := placehold.BuildCommand(patron.ID, book.ID, uuid.New(), core.HoldTypeClosedEnded, now)

	// act
	result := placehold.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	assertRejectedWithReason(t, result, core.ReasonRegularPatronHolds)
}

func Test_Decide_Success_CancelledHoldsDoNotCountTowardLimit(t *testing.T) {
	// arrange
	patron := testutil.GivenRegularPatron()
	now := time.Now()
	for i := 0; i < 5; i++ {
		hold := testutil.GivenActiveHold(&patron, uuid.New(), uuid.New(), now)
		if i < 2 {
			_, err := patron.CancelHold(hold.ID, now)
			require.NoError(t, err)
		}
	}

	book := testutil.GivenCirculatingBook()
	command := placehold.BuildCommand(patron.ID, book.ID, uuid.New(), core.HoldTypeClosedEnded, now)

	// act
	result := placehold.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	require.NoError(t, result.HasError())
	assert.Equal(t, 4, result.Patron.ActiveHoldCount())
}

func Test_Decide_Error_TooManyOverdueCheckoutsAtBranch(t *testing.T) {
	// arrange
	patron := testutil.GivenRegularPatron()
	branchID := uuid.New()
	now := time.Now()
	for i := 0; i < 3; i++ {
		testutil.GivenOverdueCheckout(&patron, uuid.New(), branchID, now)
	}

	book := testutil.GivenCirculatingBook()
	command := placehold.BuildCommand(patron.ID, book.ID, branchID, core.HoldTypeClosedEnded, now)

	// act
	result := placehold.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	assertRejectedWithReason(t, result, core.ReasonOverdueCheckoutsInBranch)
}

func Test_Decide_Success_OverdueCheckoutsAtOtherBranchDoNotCount(t *testing.T) {
	// arrange
	patron := testutil.GivenRegularPatron()
	otherBranchID := uuid.New()
	now := time.Now()
	for i := 0; i < 3; i++ {
		testutil.GivenOverdueCheckout(&patron, uuid.New(), otherBranchID, now)
	}

	book := testutil.GivenCirculatingBook()
	command := placehold.BuildCommand(patron.ID, book.ID, uuid.New(), core.HoldTypeClosedEnded, now)

	// act
	result := placehold.Decide(patron, book, command, core.DefaultLendingPolicy())

	// assert
	require.NoError(t, result.HasError())
	assert.Len(t, result.Patron.Holds, 1)
}

func assertRejectedWithReason(t *testing.T, result core.DecisionResult, reason string) {
	t.Helper()

	err := result.HasError()
	require.Error(t, err)

	validationErr, ok := core.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got: %v", err)
	assert.Equal(t, reason, validationErr.Reason)
	assert.False(t, result.HasEventsToPublish())
}
