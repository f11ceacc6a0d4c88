package postgres

import (
	"context"
	"database/sql"
	"errors"

	"warranty/internal/domain"
	"warranty/internal/repository"
)

// PlanRepository is a PostgreSQL implementation of repository.PlanRepository.
type PlanRepository struct {
	q Querier
}

// NewPlanRepository creates a new PostgreSQL plan repository.
func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{q: db}
}

// GetByID retrieves a plan by its unique id.
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	query := `SELECT id, name, category FROM plans WHERE id = $1`

	var plan domain.Plan
	err := r.q.QueryRowContext(ctx, query, id).Scan(&plan.ID, &plan.Name, &plan.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &plan, nil
}

// GetByName retrieves a plan by case-insensitive exact name match.
func (r *PlanRepository) GetByName(ctx context.Context, name string) (*domain.Plan, error) {
	query := `SELECT id, name, category FROM plans WHERE LOWER(name) = LOWER($1)`

	var plan domain.Plan
	err := r.q.QueryRowContext(ctx, query, name).Scan(&plan.ID, &plan.Name, &plan.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &plan, nil
}

// GetAll returns every plan.
func (r *PlanRepository) GetAll(ctx context.Context) ([]*domain.Plan, error) {
	query := `SELECT id, name, category FROM plans ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		var plan domain.Plan
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.Category); err != nil {
			return nil, err
		}
		plans = append(plans, &plan)
	}

	return plans, rows.Err()
}
