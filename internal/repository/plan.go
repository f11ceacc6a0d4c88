package repository

import (
	"context"

	"warranty/internal/domain"
)

// PlanRepository defines read access to warranty plan reference data.
// Plans are read-only during checkout.
type PlanRepository interface {
	// GetByID retrieves a plan by its unique id.
	GetByID(ctx context.Context, id string) (*domain.Plan, error)

	// GetByName retrieves a plan by case-insensitive exact name match.
	GetByName(ctx context.Context, name string) (*domain.Plan, error)

	// GetAll returns every plan.
	GetAll(ctx context.Context) ([]*domain.Plan, error)
}
