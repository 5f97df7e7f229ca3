package placehold

import (
	"time"

	"github.com/google/uuid"

	"github.com/publiclibrary/lending-go/lending/core"
)

const (
	commandType = "PlaceHold"
)

// Command represents the intent of a patron to place a hold on a book
// at a branch. It encapsulates all the necessary information required
// to execute the place hold use case.
type Command struct {
	PatronID   uuid.UUID
	BookID     uuid.UUID
	BranchID   uuid.UUID
	HoldType   core.HoldType
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	patronID uuid.UUID,
	bookID uuid.UUID,
	branchID uuid.UUID,
	holdType core.HoldType,
	occurredAt time.Time,
) Command {
	return Command{
		PatronID:   patronID,
		BookID:     bookID,
		BranchID:   branchID,
		HoldType:   holdType,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
