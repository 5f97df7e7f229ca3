package sweep

import (
	"context"
	"errors"
	"time"

	"github.com/publiclibrary/lending-go/lending/core"
	"github.com/publiclibrary/lending-go/lending/shared/shell"
)

// Report summarizes one sweep run.
type Report struct {
	PatronsSwept           int
	HoldsExpired           int
	CheckoutsMarkedOverdue int
	PatronsFailed          int
}

// Handler runs the sweep over a batch of patrons, persisting and
// publishing the transitions per patron.
type Handler struct {
	patrons   shell.PatronRepository
	publisher shell.EventPublisher
	logger    shell.Logger
}

// NewHandler creates a sweep Handler. The logger may be nil.
func NewHandler(patrons shell.PatronRepository, publisher shell.EventPublisher, logger shell.Logger) Handler {
	return Handler{
		patrons:   patrons,
		publisher: publisher,
		logger:    logger,
	}
}

// Run sweeps every patron in the batch as of now. A failing patron is
// logged and counted, the sweep continues with the next one; the
// joined per-patron errors are returned alongside the report.
func (h Handler) Run(ctx context.Context, patrons []core.Patron, now time.Time) (Report, error) {
	report := Report{}
	var failures []error

	for _, patron := range patrons {
		if err := h.sweepOne(ctx, patron, now, &report); err != nil {
			report.PatronsFailed++
			failures = append(failures, err)

			if h.logger != nil {
				h.logger.Error("sweeping patron failed", "patron_id", patron.ID.String(), "error", err)
			}
		}
	}

	return report, errors.Join(failures...)
}

func (h Handler) sweepOne(ctx context.Context, patron core.Patron, now time.Time, report *Report) error {
	result := SweepPatron(patron, now)
	if err := result.HasError(); err != nil {
		return err
	}

	if !result.HasEventsToPublish() {
		return nil // nothing due for this patron
	}

	if err := h.patrons.Save(ctx, result.Patron); err != nil {
		return err
	}

	if err := h.publisher.Publish(ctx, patron.ID, result.Events...); err != nil {
		return err
	}

	report.PatronsSwept++

	for _, event := range result.Events {
		switch event.IsEventType() {
		case core.HoldExpiredEventType:
			report.HoldsExpired++
		case core.BookOverdueEventType:
			report.CheckoutsMarkedOverdue++
		}
	}

	return nil
}
