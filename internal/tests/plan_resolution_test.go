package tests

import (
	"context"
	"errors"
	"testing"

	"warranty/internal/domain"
	"warranty/internal/repository"
	"warranty/internal/service"
)

// ──────────────────────────────────────────────
// PLAN RESOLUTION
// ──────────────────────────────────────────────

func TestParsePlanIdentifier_Classification(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		raw  string
		want service.PlanIdentifierKind
	}{
		{name: "uuid is an id", raw: "7b1cadf8-90aa-4a78-a2b4-0b4f2e2c6a11", want: service.PlanIdentifierID},
		{name: "plan name", raw: "Premium Car Plan", want: service.PlanIdentifierName},
		{name: "numeric string is a name", raw: "12345", want: service.PlanIdentifierName},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := service.ParsePlanIdentifier(tc.raw)
			if got.Kind != tc.want {
				t.Errorf("expected kind %v, got %v", tc.want, got.Kind)
			}
			if got.Value != tc.raw {
				t.Errorf("expected value preserved, got %s", got.Value)
			}
		})
	}
}

func TestPlanResolve_DispatchesByKind(t *testing.T) {
	t.Parallel()

	planRepo := NewMockPlanRepository()
	planRepo.AddPlan(&domain.Plan{ID: "7b1cadf8-90aa-4a78-a2b4-0b4f2e2c6a11", Name: "Premium Car Plan", Category: domain.PlanCategoryCar})
	svc := service.NewPlanService(planRepo, nil)

	plan, err := svc.Resolve(context.Background(), service.ParsePlanIdentifier("7b1cadf8-90aa-4a78-a2b4-0b4f2e2c6a11"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if plan.Name != "Premium Car Plan" {
		t.Errorf("expected Premium Car Plan, got %s", plan.Name)
	}
	if planRepo.GetByIDCallCount != 1 || planRepo.GetByNameCallCount != 0 {
		t.Errorf("expected id lookup only, got id=%d name=%d", planRepo.GetByIDCallCount, planRepo.GetByNameCallCount)
	}

	// Case-insensitive name lookup hits the name path.
	if _, err := svc.Resolve(context.Background(), service.ParsePlanIdentifier("premium car plan")); err != nil {
		t.Fatalf("expected case-insensitive match, got: %v", err)
	}
	if planRepo.GetByNameCallCount != 1 {
		t.Errorf("expected 1 name lookup, got %d", planRepo.GetByNameCallCount)
	}
}

func TestPlanResolve_UnknownPlan_NotFound(t *testing.T) {
	t.Parallel()

	svc := service.NewPlanService(NewMockPlanRepository(), nil)

	_, err := svc.Resolve(context.Background(), service.ParsePlanIdentifier("No Such Plan"))
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestProviderPlanCode_Mapping(t *testing.T) {
	t.Parallel()

	code, err := service.ProviderPlanCode("Premium Car Plan")
	if err != nil {
		t.Fatalf("expected mapping, got: %v", err)
	}
	if code != "2" {
		t.Errorf("expected code 2, got %s", code)
	}

	// Case differences come from legacy funnel links.
	code, err = service.ProviderPlanCode("VAN PLAN")
	if err != nil {
		t.Fatalf("expected case-insensitive mapping, got: %v", err)
	}
	if code != "4" {
		t.Errorf("expected code 4, got %s", code)
	}

	if _, err := service.ProviderPlanCode("Classic Car Plan"); !errors.Is(err, service.ErrPlanCodeUnmapped) {
		t.Fatalf("expected ErrPlanCodeUnmapped, got: %v", err)
	}
}
