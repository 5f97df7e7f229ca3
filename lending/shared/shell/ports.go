package shell

import (
	"context"

	"github.com/google/uuid"

	"github.com/publiclibrary/lending-go/lending/core"
)

// PatronRepository is the persistence port for the Patron aggregate.
type PatronRepository interface {
	// Get loads a patron with all owned holds and checkouts.
	// Fails with core.NotFoundError when the id is unknown.
	Get(ctx context.Context, id uuid.UUID) (core.Patron, error)

	// Save upserts the patron together with its child collections in
	// one transaction. It checks the aggregate's version and fails with
	// eventstore.ErrConcurrencyConflict when the stored version moved,
	// so callers can reload and retry the whole command.
	Save(ctx context.Context, patron core.Patron) error
}

// BookRepository is the persistence port for the Book aggregate.
type BookRepository interface {
	// Get loads a book by id. Fails with core.NotFoundError when the id is unknown.
	Get(ctx context.Context, id uuid.UUID) (core.Book, error)

	// FindByISBN looks a book up by its natural key. The boolean
	// reports whether a book was found.
	FindByISBN(ctx context.Context, isbn core.ISBNString) (core.Book, bool, error)

	// Save upserts the book, keyed by isbn, so replayed catalogue
	// notifications never create duplicate aggregates.
	Save(ctx context.Context, book core.Book) error
}

// EventPublisher is the outbound port for domain events. Events are
// appended to the stream identified by the owning aggregate's id, in
// the order given; delivery to downstream handlers is at-least-once.
type EventPublisher interface {
	Publish(ctx context.Context, streamID uuid.UUID, events ...core.DomainEvent) error
}
