package returnbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/publiclibrary/lending-go/lending/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent of a patron to return a checked out book.
type Command struct {
	PatronID   uuid.UUID
	BookID     uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(patronID uuid.UUID, bookID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		PatronID:   patronID,
		BookID:     bookID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
