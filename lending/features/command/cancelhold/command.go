package cancelhold

import (
	"time"

	"github.com/google/uuid"

	"github.com/publiclibrary/lending-go/lending/core"
)

const (
	commandType = "CancelHold"
)

// Command represents the intent of a patron to cancel one of their holds.
type Command struct {
	PatronID   uuid.UUID
	HoldID     uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(patronID uuid.UUID, holdID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		PatronID:   patronID,
		HoldID:     holdID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
