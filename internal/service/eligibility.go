package service

import (
	"fmt"
	"time"
)

// ValidateVehicleEligibility rejects vehicles older than maxAge years.
// A zero year means the manufacture year was not supplied and passes
// through; a vehicle exactly maxAge years old is still eligible. Pure
// function, no side effects.
func ValidateVehicleEligibility(manufactureYear, maxAge int, now time.Time) error {
	if manufactureYear == 0 {
		return nil
	}

	age := now.Year() - manufactureYear
	if age > maxAge {
		return fmt.Errorf("%w: vehicle is %d years old, maximum is %d", ErrVehicleIneligible, age, maxAge)
	}

	return nil
}
