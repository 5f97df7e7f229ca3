package core

import (
	"github.com/google/uuid"
)

// BookType distinguishes freely circulating books from restricted ones
// that only researcher patrons may reserve or check out.
type BookType string

// The closed set of book types.
const (
	BookTypeCirculating BookType = "CIRCULATING"
	BookTypeRestricted  BookType = "RESTRICTED"
)

// BookStatus is the availability state of a Book. It is a projection
// driven by events raised on the Patron side: a Book never decides its
// own hold or checkout state inside the lending services.
type BookStatus string

// The closed set of book statuses.
const (
	BookStatusAvailable  BookStatus = "AVAILABLE"
	BookStatusOnHold     BookStatus = "ON_HOLD"
	BookStatusCheckedOut BookStatus = "CHECKED_OUT"
)

// Book is a separate aggregate referenced from holds and checkouts by
// id, never embedded in the Patron aggregate.
type Book struct {
	ID       uuid.UUID
	ISBN     ISBNString
	BookType BookType
	Status   BookStatus
	Version  uint
}

// BuildBook creates a Book aggregate in AVAILABLE status.
func BuildBook(id uuid.UUID, isbn ISBNString, bookType BookType) Book {
	return Book{
		ID:       id,
		ISBN:     isbn,
		BookType: bookType,
		Status:   BookStatusAvailable,
	}
}

// MarkOnHold flips the book to ON_HOLD.
func (b *Book) MarkOnHold() {
	b.Status = BookStatusOnHold
}

// MarkCheckedOut flips the book to CHECKED_OUT.
func (b *Book) MarkCheckedOut() {
	b.Status = BookStatusCheckedOut
}

// MarkAvailable flips the book back to AVAILABLE.
func (b *Book) MarkAvailable() {
	b.Status = BookStatusAvailable
}
