package dailysheet_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/publiclibrary/lending-go/lending/core"
	"github.com/publiclibrary/lending-go/lending/features/projection/dailysheet"
	"github.com/publiclibrary/lending-go/testutil"
)

func Test_Manager_Handle_HoldPlaced_CreatesActiveRow(t *testing.T) {
	// arrange
	ctx := context.Background()
	sheets := testutil.NewInMemoryDailySheetRepository()
	manager := dailysheet.NewManager(sheets, nil)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	hold := testutil.GivenActiveHold(&patron, uuid.New(), uuid.New(), now)
	event := core.BuildHoldPlaced(patron, hold, now)

	// act
	err := manager.Handle(ctx, event)

	// assert
	require.NoError(t, err)

	sheet, found, err := sheets.FindForHold(ctx, patron.ID.String(), hold.ID.String())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, dailysheet.HoldRowActive, sheet.HoldStatus)
	assert.Equal(t, hold.BookID.String(), sheet.BookID)
	require.NotNil(t, sheet.HoldExpiresOn)
	assert.Equal(t, *hold.ExpiresOn, *sheet.HoldExpiresOn)
}

func Test_Manager_Handle_HoldLifecycle_UpdatesSameRow(t *testing.T) {
	// arrange
	ctx := context.Background()
	sheets := testutil.NewInMemoryDailySheetRepository()
	manager := dailysheet.NewManager(sheets, nil)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	hold := testutil.GivenActiveHold(&patron, uuid.New(), uuid.New(), now)

	require.NoError(t, manager.Handle(ctx, core.BuildHoldPlaced(patron, hold, now)))
	before, _, err := sheets.FindForHold(ctx, patron.ID.String(), hold.ID.String())
	require.NoError(t, err)

	// act
	require.NoError(t, manager.Handle(ctx, core.BuildHoldExpired(patron, hold, now.AddDate(0, 0, 8))))

	// assert
	after, found, err := sheets.FindForHold(ctx, patron.ID.String(), hold.ID.String())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, dailysheet.HoldRowExpired, after.HoldStatus)
}

func Test_Manager_Handle_HoldCancelled_WithoutPriorRow(t *testing.T) {
	// arrange
	ctx := context.Background()
	sheets := testutil.NewInMemoryDailySheetRepository()
	manager := dailysheet.NewManager(sheets, nil)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	hold := testutil.GivenActiveHold(&patron, uuid.New(), uuid.New(), now)

	// act - the HoldPlaced projection was lost, only the cancellation arrives
	err := manager.Handle(ctx, core.BuildHoldCancelled(patron, hold, now))

	// assert
	require.NoError(t, err)

	sheet, found, err := sheets.FindForHold(ctx, patron.ID.String(), hold.ID.String())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, dailysheet.HoldRowCancelled, sheet.HoldStatus)
}

func Test_Manager_Handle_BookCheckedOut_IsIdempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	sheets := testutil.NewInMemoryDailySheetRepository()
	manager := dailysheet.NewManager(sheets, nil)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	checkout := testutil.GivenActiveCheckout(&patron, uuid.New(), uuid.New(), now)
	event := core.BuildBookCheckedOut(patron, checkout, now)

	// act - the same event delivered twice
	require.NoError(t, manager.Handle(ctx, event))
	require.NoError(t, manager.Handle(ctx, event))

	// assert
	due := core.DayOf(now).AddDate(0, 0, core.DefaultCheckoutPeriodDays+1)
	rows, err := sheets.CheckoutsToBeMarkedOverdue(ctx, due)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, dailysheet.CheckoutRowActive, rows[0].CheckoutStatus)
}

func Test_Manager_Handle_BookReturned_RecordsReturnTime(t *testing.T) {
	// arrange
	ctx := context.Background()
	sheets := testutil.NewInMemoryDailySheetRepository()
	manager := dailysheet.NewManager(sheets, nil)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	checkout := testutil.GivenActiveCheckout(&patron, uuid.New(), uuid.New(), now.AddDate(0, 0, -10))
	require.NoError(t, manager.Handle(ctx, core.BuildBookCheckedOut(patron, checkout, checkout.CheckedOutAt)))

	returnedAt := now
	checkout.Return(returnedAt)

	// act
	err := manager.Handle(ctx, core.BuildBookReturned(patron, checkout, returnedAt))

	// assert
	require.NoError(t, err)

	sheet, found, err := sheets.FindForCheckout(ctx, patron.ID.String(), checkout.ID.String())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, dailysheet.CheckoutRowReturned, sheet.CheckoutStatus)
	assert.NotNil(t, sheet.CheckoutReturnedAt)
}

func Test_Manager_Handle_BookOverdue_MovesRowToOverdueList(t *testing.T) {
	// arrange
	ctx := context.Background()
	sheets := testutil.NewInMemoryDailySheetRepository()
	manager := dailysheet.NewManager(sheets, nil)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	checkout := testutil.GivenOverdueCheckout(&patron, uuid.New(), uuid.New(), now)
	require.NoError(t, manager.Handle(ctx, core.BuildBookCheckedOut(patron, checkout, checkout.CheckedOutAt)))

	require.NoError(t, checkout.Overdue())

	// act
	err := manager.Handle(ctx, core.BuildBookOverdue(patron, checkout, now))

	// assert
	require.NoError(t, err)

	rows, err := sheets.OverdueCheckouts(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotNil(t, rows[0].CheckoutOverdueAt)
}

func Test_Manager_HandleAll_IsolatesFailures(t *testing.T) {
	// arrange
	ctx := context.Background()
	sheets := testutil.NewInMemoryDailySheetRepository()
	manager := dailysheet.NewManager(sheets, nil)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	first := testutil.GivenActiveHold(&patron, uuid.New(), uuid.New(), now)
	second := testutil.GivenActiveHold(&patron, uuid.New(), uuid.New(), now)

	require.NoError(t, manager.Handle(ctx, core.BuildHoldPlaced(patron, first, now)))

	upsertErr := assert.AnError
	sheets.UpsertErr = upsertErr

	// act - both events fail on the broken repository
	err := manager.HandleAll(ctx,
		core.BuildHoldPlaced(patron, second, now),
		core.BuildHoldExpired(patron, first, now),
	)

	// assert
	require.ErrorIs(t, err, upsertErr)

	sheets.UpsertErr = nil
	sheet, found, findErr := sheets.FindForHold(ctx, patron.ID.String(), first.ID.String())
	require.NoError(t, findErr)
	require.True(t, found)
	assert.Equal(t, dailysheet.HoldRowActive, sheet.HoldStatus)
}

func Test_Manager_Handle_IgnoresUnknownEvents(t *testing.T) {
	// arrange
	ctx := context.Background()
	sheets := testutil.NewInMemoryDailySheetRepository()
	manager := dailysheet.NewManager(sheets, nil)

	// act
	err := manager.Handle(ctx, unknownEvent{})

	// assert
	require.NoError(t, err)
}

type unknownEvent struct{}

func (e unknownEvent) IsEventType() string      { return "SomethingElse" }
func (e unknownEvent) HasOccurredAt() time.Time { return time.Time{} }
func (e unknownEvent) IsErrorEvent() bool       { return false }
