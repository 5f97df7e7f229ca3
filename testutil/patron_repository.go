package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/publiclibrary/lending-go/eventstore"
	"github.com/publiclibrary/lending-go/lending/core"
)

// InMemoryPatronRepository is a threadsafe in-memory PatronRepository.
// Save applies the same optimistic version check as the Postgres
// implementation and fails with eventstore.ErrConcurrencyConflict on a
// stale aggregate.
type InMemoryPatronRepository struct {
	mu      sync.RWMutex
	patrons map[uuid.UUID]core.Patron

	// SaveErr, when set, is returned by every Save call. Useful to
	// force the retry path in handler tests.
	SaveErr error

	// ConflictNextSaves makes the next N Save calls fail with
	// eventstore.ErrConcurrencyConflict before the version check runs.
	ConflictNextSaves int
}

// NewInMemoryPatronRepository creates an empty repository.
func NewInMemoryPatronRepository() *InMemoryPatronRepository {
	return &InMemoryPatronRepository{
		patrons: make(map[uuid.UUID]core.Patron),
	}
}

// Seed stores a patron directly, bypassing the version check.
func (r *InMemoryPatronRepository) Seed(patron core.Patron) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if patron.Version == 0 {
		patron.Version = 1
	}

	r.patrons[patron.ID] = clonePatron(patron)
}

// Get loads a patron or fails with core.NotFoundError.
func (r *InMemoryPatronRepository) Get(_ context.Context, id uuid.UUID) (core.Patron, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patron, ok := r.patrons[id]
	if !ok {
		return core.Patron{}, core.NewNotFoundError("patron", id)
	}

	return clonePatron(patron), nil
}

// Save upserts the patron, checking the optimistic version token.
func (r *InMemoryPatronRepository) Save(_ context.Context, patron core.Patron) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.SaveErr != nil {
		return r.SaveErr
	}

	if r.ConflictNextSaves > 0 {
		r.ConflictNextSaves--
		return eventstore.ErrConcurrencyConflict
	}

	stored, exists := r.patrons[patron.ID]

	if !exists {
		if patron.Version != 0 {
			return eventstore.ErrConcurrencyConflict
		}

		patron.Version = 1
		r.patrons[patron.ID] = clonePatron(patron)

		return nil
	}

	if stored.Version != patron.Version {
		return eventstore.ErrConcurrencyConflict
	}

	patron.Version++
	r.patrons[patron.ID] = clonePatron(patron)

	return nil
}

func clonePatron(patron core.Patron) core.Patron {
	clone := patron
	clone.Holds = append([]core.Hold(nil), patron.Holds...)
	clone.Checkouts = append([]core.Checkout(nil), patron.Checkouts...)

	return clone
}
