package core

import (
	"time"

	"github.com/google/uuid"
)

// PatronType distinguishes regular patrons from researcher patrons, who
// are exempt from the hold count limit and may place open-ended holds.
type PatronType string

// The closed set of patron types.
const (
	PatronTypeRegular    PatronType = "REGULAR"
	PatronTypeResearcher PatronType = "RESEARCHER"
)

// Patron is the aggregate root owning all Hold and Checkout entities of
// one library patron. Only the patron mutates its children, so every
// event raised by a child transition carries the owner's identity and
// belongs to the patron's event stream.
//
// Version is the optimistic concurrency token checked by the repository
// on save; it is never touched by domain logic.
type Patron struct {
	ID         uuid.UUID
	PatronType PatronType
	Holds      []Hold
	Checkouts  []Checkout
	Version    uint
}

// BuildPatron creates a Patron aggregate without holds or checkouts.
func BuildPatron(id uuid.UUID, patronType PatronType) Patron {
	return Patron{
		ID:         id,
		PatronType: patronType,
	}
}

// FindHold returns a pointer to the owned hold with the given id, or nil.
func (p *Patron) FindHold(holdID uuid.UUID) *Hold {
	for i := range p.Holds {
		if p.Holds[i].ID == holdID {
			return &p.Holds[i]
		}
	}

	return nil
}

// AddHold appends a hold to the patron's owned collection.
func (p *Patron) AddHold(hold Hold) {
	p.Holds = append(p.Holds, hold)
}

// AddCheckout appends a checkout to the patron's owned collection.
func (p *Patron) AddCheckout(checkout Checkout) {
	p.Checkouts = append(p.Checkouts, checkout)
}

// ActiveHoldCount counts the patron's holds in ACTIVE status. Cancelled,
// expired and checked-out holds do not count toward the five-hold limit.
func (p *Patron) ActiveHoldCount() int {
	count := 0

	for i := range p.Holds {
		if p.Holds[i].IsActive() {
			count++
		}
	}

	return count
}

// ExpireHold transitions the owned hold to EXPIRED and returns the
// HoldExpired event. It fails with a "hold" validation error when no
// such hold exists.
func (p *Patron) ExpireHold(holdID uuid.UUID, occurredAt time.Time) (DomainEvent, error) {
	hold := p.FindHold(holdID)
	if hold == nil {
		return nil, NewValidationError(ReasonMissingHold, "hold does not exist")
	}

	hold.Expire()

	return BuildHoldExpired(*p, *hold, occurredAt), nil
}

// CancelHold transitions the owned hold to CANCELLED and returns the
// HoldCancelled event. It fails with a "hold" validation error when no
// such hold exists and propagates the hold's own cancellation rules.
func (p *Patron) CancelHold(holdID uuid.UUID, occurredAt time.Time) (DomainEvent, error) {
	hold := p.FindHold(holdID)
	if hold == nil {
		return nil, NewValidationError(ReasonMissingHold, "hold does not exist")
	}

	if err := hold.Cancel(DayOf(occurredAt)); err != nil {
		return nil, err
	}

	return BuildHoldCancelled(*p, *hold, occurredAt), nil
}

// ReturnBook finds the patron's open checkout for the given book,
// transitions it to RETURNED and returns the BookReturned event. It
// fails with a "checkout" validation error when no open checkout for
// the book exists. An OVERDUE checkout can still be returned.
func (p *Patron) ReturnBook(bookID uuid.UUID, occurredAt time.Time) (DomainEvent, error) {
	for i := range p.Checkouts {
		checkout := &p.Checkouts[i]
		if checkout.BookID == bookID && checkout.IsOpen() {
			checkout.Return(occurredAt)

			return BuildBookReturned(*p, *checkout, occurredAt), nil
		}
	}

	return nil, NewValidationError(ReasonMissingCheckout, "checkout does not exist")
}

// OverdueCheckout transitions the owned checkout to OVERDUE and returns
// the BookOverdue event. It fails with a "checkout" validation error
// when no such checkout exists or the checkout is no longer ACTIVE.
func (p *Patron) OverdueCheckout(checkoutID uuid.UUID, occurredAt time.Time) (DomainEvent, error) {
	for i := range p.Checkouts {
		checkout := &p.Checkouts[i]
		if checkout.ID == checkoutID {
			if err := checkout.Overdue(); err != nil {
				return nil, err
			}

			return BuildBookOverdue(*p, *checkout, occurredAt), nil
		}
	}

	return nil, NewValidationError(ReasonMissingCheckout, "checkout does not exist")
}
