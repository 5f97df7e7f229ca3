package placehold

import (
	"context"

	"github.com/publiclibrary/lending-go/lending/core"
	"github.com/publiclibrary/lending-go/lending/shared/shell"
)

// CommandHandler orchestrates the complete command processing workflow
// with pure business logic and retry. It handles the standard lending
// workflow: Load -> Decide -> Save -> Publish.
type CommandHandler struct {
	patrons      shell.PatronRepository
	books        shell.BookRepository
	publisher    shell.EventPublisher
	policy       core.LendingPolicy
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

// WithPolicy overrides the default lending policy.
func WithPolicy(policy core.LendingPolicy) Option {
	return func(h *CommandHandler) {
		h.policy = policy
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(
	patrons shell.PatronRepository,
	books shell.BookRepository,
	publisher shell.EventPublisher,
	opts ...Option,
) CommandHandler {
	handler := CommandHandler{
		patrons:   patrons,
		books:     books,
		publisher: publisher,
		policy:    core.DefaultLendingPolicy(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
// It delegates business logic to executeCommand and handles retry with
// exponential backoff. Returns HandlerResult containing execution metadata.
//
// Resilience: only concurrency conflicts on save are retried; rule
// rejections and missing aggregates fail fast.
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

	book, err := h.books.Get(ctx, command.BookID)
	if err != nil {
		return err
	}

	result := Decide(patron, book, command, h.policy)
	if err := result.HasError(); err != nil {
		return err
	}

	if err := h.patrons.Save(ctx, result.Patron); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, command.PatronID, result.Events...)
}
