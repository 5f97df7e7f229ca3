package eventstore

import (
	"errors"
)

var (
	// ErrEmptyEventsTableName is returned when an empty events table name is supplied.
	ErrEmptyEventsTableName = errors.New("empty events table name supplied")

	// ErrNilDatabaseHandle is returned when a nil database handle is supplied to an engine factory.
	ErrNilDatabaseHandle = errors.New("nil database handle supplied")

	// ErrConcurrencyConflict is returned when a conditional append affected no rows
	// because the stream moved past the expected sequence number.
	ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")
)

// MaxSequenceNumberUint is a type alias for uint, representing the
// highest sequence number of one event stream.
type MaxSequenceNumberUint = uint
