package service

import "errors"

var (
	// ErrVehicleIneligible is returned when the vehicle is too old to cover.
	ErrVehicleIneligible = errors.New("vehicle not eligible for cover")

	// ErrInvalidPaymentDuration is returned when the term is not an offered length.
	ErrInvalidPaymentDuration = errors.New("invalid payment duration")

	// ErrInvalidAmount is returned when the final amount is not positive.
	ErrInvalidAmount = errors.New("invalid final amount")

	// ErrMissingCustomerDetails is returned when required customer fields are absent.
	ErrMissingCustomerDetails = errors.New("missing customer details")

	// ErrMissingVehicleReg is returned when the vehicle registration is absent.
	ErrMissingVehicleReg = errors.New("missing vehicle registration")

	// ErrPlanCodeUnmapped is returned when a plan has no provider plan-type code.
	// Unknown plans fail hard so a provider-side product category is never mis-billed.
	ErrPlanCodeUnmapped = errors.New("plan has no provider plan code")

	// ErrProviderNotConfigured is returned when financing credentials are absent.
	// This is an operational misconfiguration, not a user error.
	ErrProviderNotConfigured = errors.New("financing provider not configured")

	// ErrBelowMinimumAmount is returned when the amount is under the provider's
	// stated minimum. Routed to the card-provider fallback.
	ErrBelowMinimumAmount = errors.New("amount below provider minimum")
)

// CardProviderName identifies the alternate, immediate-card provider
// offered when financing initiation fails.
const CardProviderName = "card"

// FallbackError signals the caller to retry checkout with the alternate
// provider instead of presenting a dead end.
type FallbackError struct {
	Provider string // alternate provider to offer
	Reason   error
}

func (e *FallbackError) Error() string {
	return "retry checkout with " + e.Provider + " provider: " + e.Reason.Error()
}

func (e *FallbackError) Unwrap() error {
	return e.Reason
}
