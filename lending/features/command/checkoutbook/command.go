package checkoutbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/publiclibrary/lending-go/lending/core"
)

const (
	commandType = "CheckoutBook"
)

// Command represents the intent of a patron to check out a book they
// hold, at a branch.
type Command struct {
	PatronID   uuid.UUID
	BookID     uuid.UUID
	BranchID   uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(patronID uuid.UUID, bookID uuid.UUID, branchID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		PatronID:   patronID,
		BookID:     bookID,
		BranchID:   branchID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
