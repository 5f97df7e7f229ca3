package bookstatus_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/publiclibrary/lending-go/lending/core"
	"github.com/publiclibrary/lending-go/lending/features/reaction/bookstatus"
	"github.com/publiclibrary/lending-go/testutil"
)

func Test_Handler_Handle_HoldPlaced_MarksBookOnHold(t *testing.T) {
	// arrange
	ctx := context.Background()
	books := testutil.NewInMemoryBookRepository()
	handler := bookstatus.NewHandler(books, nil)

	book := testutil.GivenCirculatingBook()
	books.Seed(book)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	hold := testutil.GivenActiveHold(&patron, book.ID, uuid.New(), now)

	// act
	err := handler.Handle(ctx, core.BuildHoldPlaced(patron, hold, now))

	// assert
	require.NoError(t, err)
	assertBookStatus(t, books, book.ID, core.BookStatusOnHold)
}

func Test_Handler_Handle_HoldPlaced_OnCheckedOutBook_KeepsCheckedOut(t *testing.T) {
	// arrange
	ctx := context.Background()
	books := testutil.NewInMemoryBookRepository()
	handler := bookstatus.NewHandler(books, nil)

	book := testutil.GivenCirculatingBook()
	book.MarkCheckedOut()
	books.Seed(book)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	hold := testutil.GivenActiveHold(&patron, book.ID, uuid.New(), now)

	// act
	err := handler.Handle(ctx, core.BuildHoldPlaced(patron, hold, now))

	// assert
	require.NoError(t, err)
	assertBookStatus(t, books, book.ID, core.BookStatusCheckedOut)
}

func Test_Handler_Handle_HoldCancelled_ReleasesBook(t *testing.T) {
	// arrange
	ctx := context.Background()
	books := testutil.NewInMemoryBookRepository()
	handler := bookstatus.NewHandler(books, nil)

	book := testutil.GivenCirculatingBook()
	book.MarkOnHold()
	books.Seed(book)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	hold := testutil.GivenActiveHold(&patron, book.ID, uuid.New(), now)

	// act
	err := handler.Handle(ctx, core.BuildHoldCancelled(patron, hold, now))

	// assert
	require.NoError(t, err)
	assertBookStatus(t, books, book.ID, core.BookStatusAvailable)
}

func Test_Handler_Handle_LateHoldExpired_DoesNotClobberCheckedOut(t *testing.T) {
	// arrange
	ctx := context.Background()
	books := testutil.NewInMemoryBookRepository()
	handler := bookstatus.NewHandler(books, nil)

	book := testutil.GivenCirculatingBook()
	book.MarkCheckedOut()
	books.Seed(book)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	hold := testutil.GivenActiveHold(&patron, book.ID, uuid.New(), now.AddDate(0, 0, -30))

	// act
	err := handler.Handle(ctx, core.BuildHoldExpired(patron, hold, now))

	// assert
	require.NoError(t, err)
	assertBookStatus(t, books, book.ID, core.BookStatusCheckedOut)
}

func Test_Handler_Handle_BookCheckedOut_MarksBookCheckedOut(t *testing.T) {
	// arrange
	ctx := context.Background()
	books := testutil.NewInMemoryBookRepository()
	handler := bookstatus.NewHandler(books, nil)

	book := testutil.GivenCirculatingBook()
	book.MarkOnHold()
	books.Seed(book)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	checkout := testutil.GivenActiveCheckout(&patron, book.ID, uuid.New(), now)

	// act
	err := handler.Handle(ctx, core.BuildBookCheckedOut(patron, checkout, now))

	// assert
	require.NoError(t, err)
	assertBookStatus(t, books, book.ID, core.BookStatusCheckedOut)
}

func Test_Handler_Handle_BookReturned_MakesBookAvailable(t *testing.T) {
	// arrange
	ctx := context.Background()
	books := testutil.NewInMemoryBookRepository()
	handler := bookstatus.NewHandler(books, nil)

	book := testutil.GivenCirculatingBook()
	book.MarkCheckedOut()
	books.Seed(book)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	checkout := testutil.GivenActiveCheckout(&patron, book.ID, uuid.New(), now.AddDate(0, 0, -10))
	checkout.Return(now)

	// act
	err := handler.Handle(ctx, core.BuildBookReturned(patron, checkout, now))

	// assert
	require.NoError(t, err)
	assertBookStatus(t, books, book.ID, core.BookStatusAvailable)
}

func Test_Handler_Handle_BookOverdue_LeavesStatusUntouched(t *testing.T) {
	// arrange
	ctx := context.Background()
	books := testutil.NewInMemoryBookRepository()
	handler := bookstatus.NewHandler(books, nil)

	book := testutil.GivenCirculatingBook()
	book.MarkCheckedOut()
	books.Seed(book)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	checkout := testutil.GivenOverdueCheckout(&patron, book.ID, uuid.New(), now)
	require.NoError(t, checkout.Overdue())

	// act
	err := handler.Handle(ctx, core.BuildBookOverdue(patron, checkout, now))

	// assert
	require.NoError(t, err)
	assertBookStatus(t, books, book.ID, core.BookStatusCheckedOut)
}

func Test_Handler_Handle_UnknownBook(t *testing.T) {
	// arrange
	ctx := context.Background()
	books := testutil.NewInMemoryBookRepository()
	handler := bookstatus.NewHandler(books, nil)

	patron := testutil.GivenRegularPatron()
	now := time.Now()
	hold := testutil.GivenActiveHold(&patron, uuid.New(), uuid.New(), now)

	// act
	err := handler.Handle(ctx, core.BuildHoldPlaced(patron, hold, now))

	// assert
	require.Error(t, err)
	assert.True(t, core.IsNotFound(err))
}

func assertBookStatus(t *testing.T, books *testutil.InMemoryBookRepository, bookID uuid.UUID, want core.BookStatus) {
	t.Helper()

	book, err := books.Get(context.Background(), bookID)
	require.NoError(t, err)
	assert.Equal(t, want, book.Status)
}
