package core

// Default lending policy values.
const (
	DefaultHoldExpiryDays     = 7
	DefaultCheckoutPeriodDays = 60
)

// LendingPolicy holds the configurable durations of the lending rules:
// how long a closed-ended hold stays active and how long a checkout
// period lasts. The zero value is not usable, always start from
// DefaultLendingPolicy.
type LendingPolicy struct {
	HoldExpiryDays     int
	CheckoutPeriodDays int
}

// DefaultLendingPolicy returns the standard policy: closed-ended holds
// expire after 7 days, checkouts are due after 60 days.
func DefaultLendingPolicy() LendingPolicy {
	return LendingPolicy{
		HoldExpiryDays:     DefaultHoldExpiryDays,
		CheckoutPeriodDays: DefaultCheckoutPeriodDays,
	}
}
