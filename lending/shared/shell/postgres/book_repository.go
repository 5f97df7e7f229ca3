package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/publiclibrary/lending-go/lending/core"
)

// BookRepository persists the Book aggregate in PostgreSQL, keyed by
// id with the isbn as natural unique key.
type BookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository creates a BookRepository on the given pool.
func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

// Get loads a book by id. Fails with core.NotFoundError when the id is unknown.
func (r *BookRepository) Get(ctx context.Context, id uuid.UUID) (core.Book, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(tableBooks).
		Select("isbn", "book_type", "status", "version").
		Where(goqu.C("id").Eq(id.String())).
		ToSQL()
	if err != nil {
		return core.Book{}, err
	}

	book := core.Book{ID: id}
	var bookType, status string
	var version int64

	if err = r.pool.QueryRow(ctx, query).Scan(&book.ISBN, &bookType, &status, &version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.Book{}, core.NewNotFoundError("book", id)
		}

		return core.Book{}, fmt.Errorf("loading book: %w", err)
	}

	book.BookType = core.BookType(bookType)
	book.Status = core.BookStatus(status)
	book.Version = uint(version)

	return book, nil
}

// FindByISBN looks a book up by its natural key.
func (r *BookRepository) FindByISBN(ctx context.Context, isbn core.ISBNString) (core.Book, bool, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(tableBooks).
		Select(goqu.L("id::text"), goqu.C("book_type"), goqu.C("status"), goqu.C("version")).
		Where(goqu.C("isbn").Eq(isbn)).
		ToSQL()
	if err != nil {
		return core.Book{}, false, err
	}

	var rawID, bookType, status string
	var version int64

	if err = r.pool.QueryRow(ctx, query).Scan(&rawID, &bookType, &status, &version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.Book{}, false, nil
		}

		return core.Book{}, false, fmt.Errorf("looking up book by isbn: %w", err)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return core.Book{}, false, fmt.Errorf("parsing book id %q: %w", rawID, err)
	}

	book := core.Book{
		ID:       id,
		ISBN:     isbn,
		BookType: core.BookType(bookType),
		Status:   core.BookStatus(status),
		Version:  uint(version),
	}

	return book, true, nil
}

// Save upserts the book, keyed by isbn, so replayed catalogue
// notifications never create duplicate aggregates.
func (r *BookRepository) Save(ctx context.Context, book core.Book) error {
	query, _, err := goqu.Dialect(dialectPostgres).
		Insert(tableBooks).
		Rows(goqu.Record{
			"id":        book.ID.String(),
			"isbn":      book.ISBN,
			"book_type": string(book.BookType),
			"status":    string(book.Status),
			"version":   book.Version + 1,
		}).
		OnConflict(goqu.DoUpdate("isbn", goqu.Record{
			"book_type": string(book.BookType),
			"status":    string(book.Status),
			"version":   goqu.L("books.version + 1"),
		})).
		ToSQL()
	if err != nil {
		return err
	}

	if _, err = r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("saving book: %w", err)
	}

	return nil
}
