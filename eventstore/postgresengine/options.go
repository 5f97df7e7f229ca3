package postgresengine

import (
	"github.com/publiclibrary/lending-go/eventstore"
)

// Logger interface for SQL query logging, warnings, and error reporting.
// It is dependency-free on purpose; *slog.Logger satisfies it directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore) error

// WithTableName sets the events table name for the EventStore.
func WithTableName(tableName string) Option {
	return func(es *EventStore) error {
		if tableName == "" {
			return eventstore.ErrEmptyEventsTableName
		}

		es.eventTableName = tableName

		return nil
	}
}

// WithLogger sets the logger used for query and append logging.
func WithLogger(logger Logger) Option {
	return func(es *EventStore) error {
		es.logger = logger

		return nil
	}
}
