package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/publiclibrary/lending-go/lending/core"
)

// InMemoryBookRepository is a threadsafe in-memory BookRepository.
// Books are keyed by id with an isbn index, matching the Postgres
// implementation's upsert-by-isbn semantics.
type InMemoryBookRepository struct {
	mu     sync.RWMutex
	books  map[uuid.UUID]core.Book
	byISBN map[core.ISBNString]uuid.UUID
}

// NewInMemoryBookRepository creates an empty repository.
func NewInMemoryBookRepository() *InMemoryBookRepository {
	return &InMemoryBookRepository{
		books:  make(map[uuid.UUID]core.Book),
		byISBN: make(map[core.ISBNString]uuid.UUID),
	}
}

// Seed stores a book directly.
func (r *InMemoryBookRepository) Seed(book core.Book) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.books[book.ID] = book
	r.byISBN[book.ISBN] = book.ID
}

// Get loads a book or fails with core.NotFoundError.
func (r *InMemoryBookRepository) Get(_ context.Context, id uuid.UUID) (core.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.books[id]
	if !ok {
		return core.Book{}, core.NewNotFoundError("book", id)
	}

	return book, nil
}

// FindByISBN looks a book up by its natural key.
func (r *InMemoryBookRepository) FindByISBN(_ context.Context, isbn core.ISBNString) (core.Book, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byISBN[isbn]
	if !ok {
		return core.Book{}, false, nil
	}

	return r.books[id], true, nil
}

// Save upserts the book, keyed by isbn.
func (r *InMemoryBookRepository) Save(_ context.Context, book core.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existingID, ok := r.byISBN[book.ISBN]; ok && existingID != book.ID {
		// Keep the first aggregate id for a known isbn, as the
		// ON CONFLICT clause of the Postgres implementation does.
		book.ID = existingID
	}

	r.books[book.ID] = book
	r.byISBN[book.ISBN] = book.ID

	return nil
}
