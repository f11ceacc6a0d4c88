package tests

import (
	"errors"
	"strings"
	"testing"
	"time"

	"warranty/internal/service"
)

// ──────────────────────────────────────────────
// VEHICLE ELIGIBILITY
// ──────────────────────────────────────────────

func TestVehicleEligibility(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		year    int
		wantErr bool
	}{
		{name: "new vehicle", year: 2025, wantErr: false},
		{name: "exactly at the age limit", year: 2011, wantErr: false},
		{name: "one year over the limit", year: 2010, wantErr: true},
		{name: "far over the limit", year: 1998, wantErr: true},
		{name: "year not supplied", year: 0, wantErr: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := service.ValidateVehicleEligibility(tc.year, 15, now)
			if tc.wantErr {
				if !errors.Is(err, service.ErrVehicleIneligible) {
					t.Fatalf("expected ErrVehicleIneligible, got: %v", err)
				}
			} else if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
		})
	}
}

func TestVehicleEligibility_MessageCarriesComputedAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	err := service.ValidateVehicleEligibility(2008, 15, now)
	if err == nil {
		t.Fatal("expected error for 18 year old vehicle")
	}
	if !strings.Contains(err.Error(), "18") {
		t.Errorf("expected computed age 18 in message, got: %v", err)
	}
}
