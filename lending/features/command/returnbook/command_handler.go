package returnbook

import (
	"context"

	"github.com/publiclibrary/lending-go/lending/shared/shell"
)

// CommandHandler orchestrates the complete command processing workflow
// with pure business logic and retry: Load -> Decide -> Save -> Publish.
type CommandHandler struct {
	patrons      shell.PatronRepository
	publisher    shell.EventPublisher
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(
	patrons shell.PatronRepository,
	publisher shell.EventPublisher,
	opts ...Option,
) CommandHandler {
	handler := CommandHandler{
		patrons:   patrons,
		publisher: publisher,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	patron, err := h.patrons.Get(ctx, command.PatronID)
	if err != nil {
		return err
	}

	result := Decide(patron, command)
	if err := result.HasError(); err != nil {
		return err
	}

	if err := h.patrons.Save(ctx, result.Patron); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, command.PatronID, result.Events...)
}
