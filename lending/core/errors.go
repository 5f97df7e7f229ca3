package core

import (
	"errors"

	"github.com/google/uuid"
)

// Reason keys carried by ValidationError, stable identifiers for callers
// that need to react to a specific business-rule rejection.
const (
	ReasonRestricted               = "restricted"
	ReasonBookOnHold               = "book"
	ReasonHoldType                 = "hold_type"
	ReasonRegularPatronHolds       = "regular_patron_holds"
	ReasonOverdueCheckoutsInBranch = "overdue_checkouts_in_branch"
	ReasonExpiredHold              = "expired_hold"
	ReasonCheckedOut               = "checked_out"
	ReasonMissingHold              = "hold"
	ReasonMissingCheckout          = "checkout"
	ReasonOpenEndedExpiry          = "expires_on"
)

// ValidationError is a business-rule rejection. It carries a structured
// reason key plus a human-readable message and is never retried - the
// command has to be changed or abandoned.
type ValidationError struct {
	Reason  string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Reason + ": " + e.Message
}

// NewValidationError creates a ValidationError with the given reason key and message.
func NewValidationError(reason string, message string) error {
	return ValidationError{Reason: reason, Message: message}
}

// AsValidationError unwraps err into a ValidationError if it is one.
func AsValidationError(err error) (ValidationError, bool) {
	var validationErr ValidationError
	ok := errors.As(err, &validationErr)

	return validationErr, ok
}

// NotFoundError indicates that a referenced Patron, Book, Hold or
// Checkout does not exist. Retrying will not make a missing id appear,
// so callers must surface it, never retry it.
type NotFoundError struct {
	Kind string
	ID   string
}

// Error implements the error interface.
func (e NotFoundError) Error() string {
	return e.Kind + " not found: " + e.ID
}

// NewNotFoundError creates a NotFoundError for the given kind of object.
func NewNotFoundError(kind string, id uuid.UUID) error {
	return NotFoundError{Kind: kind, ID: id.String()}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var notFoundErr NotFoundError

	return errors.As(err, &notFoundErr)
}
