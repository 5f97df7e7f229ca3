package bookstatus

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/publiclibrary/lending-go/lending/core"
	"github.com/publiclibrary/lending-go/lending/shared/shell"
)

// Handler reacts to lending events by flipping the referenced book's
// availability status.
//
// Transitions:
//
//	HoldPlaced                -> ON_HOLD, only if the book is currently AVAILABLE
//	HoldCancelled/HoldExpired -> AVAILABLE, only if the book is currently ON_HOLD
//	BookCheckedOut            -> CHECKED_OUT
//	BookReturned              -> AVAILABLE
//	BookOverdue               -> no status change
//
// The status guards keep a hold queued on a loaned-out book, and a late
// HoldExpired, from clobbering the CHECKED_OUT status the checkout set.
type Handler struct {
	books  shell.BookRepository
	logger shell.Logger
}

// NewHandler creates a Handler. The logger may be nil.
func NewHandler(books shell.BookRepository, logger shell.Logger) Handler {
	return Handler{
		books:  books,
		logger: logger,
	}
}

// Handle applies one event. Unknown event types are ignored.
func (h Handler) Handle(ctx context.Context, event core.DomainEvent) error {
	switch e := event.(type) {
	case core.HoldPlaced:
		return h.transition(ctx, e.BookID, placeHold)
	case core.HoldCancelled:
		return h.transition(ctx, e.BookID, releaseHold)
	case core.HoldExpired:
		return h.transition(ctx, e.BookID, releaseHold)
	case core.BookCheckedOut:
		return h.transition(ctx, e.BookID, func(book *core.Book) {
			book.MarkCheckedOut()
		})
	case core.BookReturned:
		return h.transition(ctx, e.BookID, func(book *core.Book) {
			book.MarkAvailable()
		})
	default:
		return nil
	}
}

func placeHold(book *core.Book) {
	if book.Status == core.BookStatusAvailable {
		book.MarkOnHold()
	}
}

func releaseHold(book *core.Book) {
	if book.Status == core.BookStatusOnHold {
		book.MarkAvailable()
	}
}

func (h Handler) transition(ctx context.Context, bookID core.BookIDString, apply func(*core.Book)) error {
	id, err := uuid.Parse(bookID)
	if err != nil {
		return fmt.Errorf("parsing book id %q: %w", bookID, err)
	}

	book, err := h.books.Get(ctx, id)
	if err != nil {
		return err
	}

	before := book.Status
	apply(&book)

	if book.Status == before {
		return nil // nothing changed, skip the write
	}

	if h.logger != nil {
		h.logger.Debug("book status transition",
			"book_id", bookID, "from", string(before), "to", string(book.Status))
	}

	return h.books.Save(ctx, book)
}
