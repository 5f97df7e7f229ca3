package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/publiclibrary/lending-go/lending/core"
	"github.com/publiclibrary/lending-go/lending/features/projection/dailysheet"
)

// InMemoryDailySheetRepository is a threadsafe in-memory daily sheet
// Repository, keyed like the unique indexes of the Postgres table.
type InMemoryDailySheetRepository struct {
	mu     sync.RWMutex
	sheets map[string]dailysheet.DailySheet

	// UpsertErr, when set, is returned by every Upsert call.
	UpsertErr error
}

// NewInMemoryDailySheetRepository creates an empty repository.
func NewInMemoryDailySheetRepository() *InMemoryDailySheetRepository {
	return &InMemoryDailySheetRepository{
		sheets: make(map[string]dailysheet.DailySheet),
	}
}

func holdKey(patronID, holdID string) string {
	return "h/" + patronID + "/" + holdID
}

func checkoutKey(patronID, checkoutID string) string {
	return "c/" + patronID + "/" + checkoutID
}

// FindForHold looks up the row tracking one hold.
func (r *InMemoryDailySheetRepository) FindForHold(
	_ context.Context,
	patronID core.PatronIDString,
	holdID core.HoldIDString,
) (dailysheet.DailySheet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sheet, ok := r.sheets[holdKey(patronID, holdID)]

	return sheet, ok, nil
}

// FindForCheckout looks up the row tracking one checkout.
func (r *InMemoryDailySheetRepository) FindForCheckout(
	_ context.Context,
	patronID core.PatronIDString,
	checkoutID core.CheckoutIDString,
) (dailysheet.DailySheet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sheet, ok := r.sheets[checkoutKey(patronID, checkoutID)]

	return sheet, ok, nil
}

// Upsert stores the row under its natural key.
func (r *InMemoryDailySheetRepository) Upsert(_ context.Context, sheet dailysheet.DailySheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.UpsertErr != nil {
		return r.UpsertErr
	}

	if sheet.IsHoldRow() {
		r.sheets[holdKey(sheet.PatronID, sheet.HoldID)] = sheet
	} else {
		r.sheets[checkoutKey(sheet.PatronID, sheet.CheckoutID)] = sheet
	}

	return nil
}

// ExpiringHolds lists ACTIVE hold rows whose expiry date falls on the given day.
func (r *InMemoryDailySheetRepository) ExpiringHolds(_ context.Context, on time.Time) ([]dailysheet.DailySheet, error) {
	day := core.DayOf(on)

	return r.filter(func(sheet dailysheet.DailySheet) bool {
		return sheet.IsHoldRow() &&
			sheet.HoldStatus == dailysheet.HoldRowActive &&
			sheet.HoldExpiresOn != nil &&
			core.DayOf(*sheet.HoldExpiresOn).Equal(day)
	}), nil
}

// ExpiredHolds lists rows already in EXPIRED status.
func (r *InMemoryDailySheetRepository) ExpiredHolds(_ context.Context) ([]dailysheet.DailySheet, error) {
	return r.filter(func(sheet dailysheet.DailySheet) bool {
		return sheet.IsHoldRow() && sheet.HoldStatus == dailysheet.HoldRowExpired
	}), nil
}

// CheckoutsToBeMarkedOverdue lists ACTIVE checkout rows due before the given day.
func (r *InMemoryDailySheetRepository) CheckoutsToBeMarkedOverdue(_ context.Context, on time.Time) ([]dailysheet.DailySheet, error) {
	day := core.DayOf(on)

	return r.filter(func(sheet dailysheet.DailySheet) bool {
		return !sheet.IsHoldRow() &&
			sheet.CheckoutStatus == dailysheet.CheckoutRowActive &&
			sheet.CheckoutDueOn != nil &&
			sheet.CheckoutDueOn.Before(day)
	}), nil
}

// OverdueCheckouts lists rows already in OVERDUE status.
func (r *InMemoryDailySheetRepository) OverdueCheckouts(_ context.Context) ([]dailysheet.DailySheet, error) {
	return r.filter(func(sheet dailysheet.DailySheet) bool {
		return !sheet.IsHoldRow() && sheet.CheckoutStatus == dailysheet.CheckoutRowOverdue
	}), nil
}

func (r *InMemoryDailySheetRepository) filter(match func(dailysheet.DailySheet) bool) []dailysheet.DailySheet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []dailysheet.DailySheet

	for _, sheet := range r.sheets {
		if match(sheet) {
			result = append(result, sheet)
		}
	}

	return result
}
