package catalogue

import (
	"context"

	"github.com/google/uuid"

	"github.com/publiclibrary/lending-go/lending/core"
	"github.com/publiclibrary/lending-go/lending/shared/shell"
)

// Handler turns catalogue notifications into lending Book aggregates.
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

// Handle registers the book instance for lending. A circulating
// instance becomes a CIRCULATING book, anything else is RESTRICTED.
// An isbn already known to lending is left untouched, so redelivered
// and duplicate notifications are no-ops.
func (h Handler) Handle(ctx context.Context, event BookInstanceAdded) error {
	_, found, err := h.books.FindByISBN(ctx, event.ISBN)
	if err != nil {
		return err
	}

	if found {
		if h.logger != nil {
			h.logger.Debug("book instance already registered", "isbn", event.ISBN)
		}

		return nil
	}

	bookType := core.BookTypeRestricted
	if event.IsCirculating {
		bookType = core.BookTypeCirculating
	}

	book := core.BuildBook(uuid.New(), event.ISBN, bookType)

	if h.logger != nil {
		h.logger.Info("registering book instance for lending",
			"isbn", event.ISBN, "book_id", book.ID.String(), "book_type", string(bookType))
	}

	return h.books.Save(ctx, book)
}

// HandlePayload parses a raw notification and registers it.
func (h Handler) HandlePayload(ctx context.Context, payload []byte) error {
	event, err := UnmarshalBookInstanceAdded(payload)
	if err != nil {
		return err
	}

	return h.Handle(ctx, event)
}
