package checkoutbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/publiclibrary/lending-go/lending/core"
	"github.com/publiclibrary/lending-go/lending/features/command/checkoutbook"
	"github.com/publiclibrary/lending-go/testutil"
)

func Test_CommandHandler_Handle_PersistsCheckoutAndPublishesEvent(t *testing.T) {
	// arrange
	ctx := context.Background()
	patrons := testutil.NewInMemoryPatronRepository()
	books := testutil.NewInMemoryBookRepository()
	publisher := testutil.NewRecordingPublisher()

	patron := testutil.GivenRegularPatron()
	book := testutil.GivenCirculatingBook()
	branchID := uuid.New()
	now := time.Now()
	testutil.GivenActiveHold(&patron, book.ID, branchID, now.Add(-time.Hour))

	patrons.Seed(patron)
	books.Seed(book)

	handler := checkoutbook.NewCommandHandler(patrons, books, publisher)
	command := checkoutbook.BuildCommand(patron.ID, book.ID, branchID, now)

	// act
	_, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)

	saved, err := patrons.Get(ctx, patron.ID)
	require.NoError(t, err)
	require.Len(t, saved.Checkouts, 1)
	assert.Equal(t, core.HoldStatusCheckedOut, saved.Holds[0].Status)

	events := publisher.EventsForStream(patron.ID)
	require.Len(t, events, 1)
	assert.Equal(t, core.BookCheckedOutEventType, events[0].IsEventType())
}

func Test_CommandHandler_Handle_CustomPolicy(t *testing.T) {
	// arrange
	ctx := context.Background()
	patrons := testutil.NewInMemoryPatronRepository()
	books := testutil.NewInMemoryBookRepository()
	publisher := testutil.NewRecordingPublisher()

	patron := testutil.GivenRegularPatron()
	book := testutil.GivenCirculatingBook()
	now := time.Now()
	testutil.GivenActiveHold(&patron, book.ID, uuid.New(), now)

	patrons.Seed(patron)
	books.Seed(book)

	policy := core.LendingPolicy{HoldExpiryDays: 3, CheckoutPeriodDays: 21}
	handler := checkoutbook.NewCommandHandler(patrons, books, publisher, checkoutbook.WithPolicy(policy))
	command := checkoutbook.BuildCommand(patron.ID, book.ID, uuid.New(), now)

	// act
	_, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)

	saved, err := patrons.Get(ctx, patron.ID)
	require.NoError(t, err)
	assert.Equal(t, core.DayOf(now).AddDate(0, 0, 21), saved.Checkouts[0].DueOn)
}

func Test_CommandHandler_Handle_WalkInCheckoutWithoutHold(t *testing.T) {
	// arrange
	ctx := context.Background()
	patrons := testutil.NewInMemoryPatronRepository()
	books := testutil.NewInMemoryBookRepository()
	publisher := testutil.NewRecordingPublisher()

	patron := testutil.GivenRegularPatron()
	book := testutil.GivenCirculatingBook()
	patrons.Seed(patron)
	books.Seed(book)

	handler := checkoutbook.NewCommandHandler(patrons, books, publisher)
	command := checkoutbook.BuildCommand(patron.ID, book.ID, uuid.New(), time.Now())

	// act
	_, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)

	saved, err := patrons.Get(ctx, patron.ID)
	require.NoError(t, err)
	assert.Empty(t, saved.Holds)
	require.Len(t, saved.Checkouts, 1)

	events := publisher.EventsForStream(patron.ID)
	require.Len(t, events, 1)
	assert.Equal(t, core.BookCheckedOutEventType, events[0].IsEventType())
}
