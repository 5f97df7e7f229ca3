package returnbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/publiclibrary/lending-go/lending/core"
	"github.com/publiclibrary/lending-go/lending/features/command/returnbook"
	"github.com/publiclibrary/lending-go/testutil"
)

func Test_CommandHandler_Handle_PersistsReturnAndPublishesEvent(t *testing.T) {
	// arrange
	ctx := context.Background()
	patrons := testutil.NewInMemoryPatronRepository()
	publisher := testutil.NewRecordingPublisher()

	patron := testutil.GivenRegularPatron()
	bookID := uuid.New()
	now := time.Now()
	testutil.GivenActiveCheckout(&patron, bookID, uuid.New(), now.AddDate(0, 0, -10))
	patrons.Seed(patron)

	handler := returnbook.NewCommandHandler(patrons, publisher)
	command := returnbook.BuildCommand(patron.ID, bookID, now)

	// act
	_, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)

	saved, err := patrons.Get(ctx, patron.ID)
	require.NoError(t, err)
	assert.Equal(t, core.CheckoutStatusReturned, saved.Checkouts[0].Status)

	events := publisher.EventsForStream(patron.ID)
	require.Len(t, events, 1)
	assert.Equal(t, core.BookReturnedEventType, events[0].IsEventType())
}

func Test_CommandHandler_Handle_UnknownPatron(t *testing.T) {
	// arrange
	ctx := context.Background()
	patrons := testutil.NewInMemoryPatronRepository()
	publisher := testutil.NewRecordingPublisher()

	handler := returnbook.NewCommandHandler(patrons, publisher)
	command := returnbook.BuildCommand(uuid.New(), uuid.New(), time.Now())

	// act
	_, err := handler.Handle(ctx, command)

	// assert
	require.Error(t, err)
	assert.True(t, core.IsNotFound(err))
}

func Test_CommandHandler_Handle_NoOpenCheckout(t *testing.T) {
	// arrange
	ctx := context.Background()
	patrons := testutil.NewInMemoryPatronRepository()
	publisher := testutil.NewRecordingPublisher()

	patron := testutil.GivenRegularPatron()
	patrons.Seed(patron)

	handler := returnbook.NewCommandHandler(patrons, publisher)
	command := returnbook.BuildCommand(patron.ID, uuid.New(), time.Now())

	// act
	_, err := handler.Handle(ctx, command)

	// assert
	require.Error(t, err)
	validationErr, ok := core.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, core.ReasonMissingCheckout, validationErr.Reason)
	assert.Empty(t, publisher.Events())
}
