package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/publiclibrary/lending-go/lending/core"
)

// Environment variables read by LoadLendingConfig.
const (
	EnvHoldExpiryDays     = "HOLD_EXPIRY_DAYS"
	EnvCheckoutPeriodDays = "CHECKOUT_PERIOD_DAYS"
	EnvSweepSchedule      = "SWEEP_SCHEDULE"
	EnvEventsTableName    = "EVENTS_TABLE_NAME"
)

// Runs every day at 05:00, before the branches open.
const defaultSweepSchedule = "0 5 * * *"

const defaultEventsTableName = "events"

// LendingConfig bundles the environment-driven lending settings.
type LendingConfig struct {
	Policy          core.LendingPolicy
	SweepSchedule   string
	EventsTableName string
}

// LoadLendingConfig reads the lending settings from the environment,
// falling back to the defaults for anything unset.
func LoadLendingConfig() (LendingConfig, error) {
	policy := core.DefaultLendingPolicy()

	holdExpiryDays, err := intFromEnv(EnvHoldExpiryDays, policy.HoldExpiryDays)
	if err != nil {
		return LendingConfig{}, err
	}
	policy.HoldExpiryDays = holdExpiryDays

	checkoutPeriodDays, err := intFromEnv(EnvCheckoutPeriodDays, policy.CheckoutPeriodDays)
	if err != nil {
		return LendingConfig{}, err
	}
	policy.CheckoutPeriodDays = checkoutPeriodDays

	cfg := LendingConfig{
		Policy:          policy,
		SweepSchedule:   defaultSweepSchedule,
		EventsTableName: defaultEventsTableName,
	}

	if schedule := os.Getenv(EnvSweepSchedule); schedule != "" {
		cfg.SweepSchedule = schedule
	}

	if tableName := os.Getenv(EnvEventsTableName); tableName != "" {
		cfg.EventsTableName = tableName
	}

	return cfg, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}

	if value <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, value)
	}

	return value, nil
}
