package dailysheet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/publiclibrary/lending-go/lending/core"
	"github.com/publiclibrary/lending-go/lending/shared/shell"
)

// Manager applies lending events to the daily sheet rows.
type Manager struct {
	sheets Repository
	logger shell.Logger
}

// NewManager creates a Manager. The logger may be nil.
func NewManager(sheets Repository, logger shell.Logger) Manager {
	return Manager{
		sheets: sheets,
		logger: logger,
	}
}

// Handle applies one event to the read model. Unknown event types are
// ignored, so the manager can share a subscription with other handlers.
func (m Manager) Handle(ctx context.Context, event core.DomainEvent) error {
	switch e := event.(type) {
	case core.HoldPlaced:
		return m.handleHoldPlaced(ctx, e)
	case core.HoldCancelled:
		return m.handleHoldClosed(ctx, e.PatronID, e.PatronType, e.BookID, e.BranchID, e.HoldID, HoldRowCancelled, e.OccurredAt)
	case core.HoldExpired:
		return m.handleHoldClosed(ctx, e.PatronID, e.PatronType, e.BookID, e.BranchID, e.HoldID, HoldRowExpired, e.OccurredAt)
	case core.BookCheckedOut:
		return m.handleBookCheckedOut(ctx, e)
	case core.BookReturned:
		return m.handleBookReturned(ctx, e)
	case core.BookOverdue:
		return m.handleBookOverdue(ctx, e)
	default:
		return nil
	}
}

// HandleAll applies a batch of events, isolating failures: one event
// failing to project never blocks the remaining ones. The joined
// per-event errors are returned.
func (m Manager) HandleAll(ctx context.Context, events ...core.DomainEvent) error {
	var failures []error

	for _, event := range events {
		if err := m.Handle(ctx, event); err != nil {
			failures = append(failures, fmt.Errorf("projecting %s: %w", event.IsEventType(), err))

			if m.logger != nil {
				m.logger.Error("projecting event failed", "event_type", event.IsEventType(), "error", err)
			}
		}
	}

	return errors.Join(failures...)
}

func (m Manager) handleHoldPlaced(ctx context.Context, event core.HoldPlaced) error {
	sheet, found, err := m.sheets.FindForHold(ctx, event.PatronID, event.HoldID)
	if err != nil {
		return err
	}

	if !found {
		sheet = newHoldRow(event.PatronID, event.PatronType, event.BookID, event.BranchID, event.HoldID)
	}

	requestedAt := event.RequestedAt
	sheet.HoldStatus = HoldRowActive
	sheet.HoldRequestedAt = &requestedAt
	sheet.HoldExpiresOn = event.ExpiresOn
	sheet.UpdatedAt = event.OccurredAt

	return m.sheets.Upsert(ctx, sheet)
}

func (m Manager) handleHoldClosed(
	ctx context.Context,
	patronID core.PatronIDString,
	patronType string,
	bookID core.BookIDString,
	branchID core.BranchIDString,
	holdID core.HoldIDString,
	status string,
	occurredAt core.OccurredAtTS,
) error {
	sheet, found, err := m.sheets.FindForHold(ctx, patronID, holdID)
	if err != nil {
		return err
	}

	if !found {
		sheet = newHoldRow(patronID, patronType, bookID, branchID, holdID)
	}

	sheet.HoldStatus = status
	sheet.UpdatedAt = occurredAt

	return m.sheets.Upsert(ctx, sheet)
}

func (m Manager) handleBookCheckedOut(ctx context.Context, event core.BookCheckedOut) error {
	sheet, found, err := m.sheets.FindForCheckout(ctx, event.PatronID, event.CheckoutID)
	if err != nil {
		return err
	}

	if !found {
		sheet = newCheckoutRow(event.PatronID, event.PatronType, event.BookID, event.BranchID, event.CheckoutID)
	}

	checkedOutAt := event.CheckedOutAt
	dueOn := event.DueOn
	sheet.CheckoutStatus = CheckoutRowActive
	sheet.CheckedOutAt = &checkedOutAt
	sheet.CheckoutDueOn = &dueOn
	sheet.UpdatedAt = event.OccurredAt

	return m.sheets.Upsert(ctx, sheet)
}

func (m Manager) handleBookReturned(ctx context.Context, event core.BookReturned) error {
	sheet, found, err := m.sheets.FindForCheckout(ctx, event.PatronID, event.CheckoutID)
	if err != nil {
		return err
	}

	if !found {
		sheet = newCheckoutRow(event.PatronID, event.PatronType, event.BookID, event.BranchID, event.CheckoutID)
	}

	returnedAt := event.ReturnedAt
	sheet.CheckoutStatus = CheckoutRowReturned
	sheet.CheckoutReturnedAt = &returnedAt
	sheet.UpdatedAt = event.OccurredAt

	return m.sheets.Upsert(ctx, sheet)
}

func (m Manager) handleBookOverdue(ctx context.Context, event core.BookOverdue) error {
	sheet, found, err := m.sheets.FindForCheckout(ctx, event.PatronID, event.CheckoutID)
	if err != nil {
		return err
	}

	if !found {
		sheet = newCheckoutRow(event.PatronID, event.PatronType, event.BookID, event.BranchID, event.CheckoutID)
	}

	overdueAt := event.OccurredAt
	sheet.CheckoutStatus = CheckoutRowOverdue
	sheet.CheckoutOverdueAt = &overdueAt
	sheet.UpdatedAt = event.OccurredAt

	return m.sheets.Upsert(ctx, sheet)
}

func newHoldRow(
	patronID core.PatronIDString,
	patronType string,
	bookID core.BookIDString,
	branchID core.BranchIDString,
	holdID core.HoldIDString,
) DailySheet {
	return DailySheet{
		ID:         uuid.NewString(),
		PatronID:   patronID,
		PatronType: patronType,
		BookID:     bookID,
		BranchID:   branchID,
		HoldID:     holdID,
	}
}

func newCheckoutRow(
	patronID core.PatronIDString,
	patronType string,
	bookID core.BookIDString,
	branchID core.BranchIDString,
	checkoutID core.CheckoutIDString,
) DailySheet {
	return DailySheet{
		ID:         uuid.NewString(),
		PatronID:   patronID,
		PatronType: patronType,
		BookID:     bookID,
		BranchID:   branchID,
		CheckoutID: checkoutID,
	}
}
