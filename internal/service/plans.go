package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"warranty/internal/domain"
	"warranty/internal/redis"
	"warranty/internal/repository"
)

// PlanIdentifierKind discriminates how a plan identifier should be looked up.
type PlanIdentifierKind int

const (
	// PlanIdentifierID looks up by unique id.
	PlanIdentifierID PlanIdentifierKind = iota
	// PlanIdentifierName looks up by case-insensitive name. Kept for
	// backward compatibility with funnel links that carry plan names.
	PlanIdentifierName
)

// PlanIdentifier is a plan lookup key resolved once at the request
// boundary and dispatched to exactly one typed lookup path.
type PlanIdentifier struct {
	Kind  PlanIdentifierKind
	Value string
}

// ParsePlanIdentifier classifies a raw identifier. UUID-shaped values
// are ids; everything else is treated as a plan name.
func ParsePlanIdentifier(raw string) PlanIdentifier {
	if _, err := uuid.Parse(raw); err == nil {
		return PlanIdentifier{Kind: PlanIdentifierID, Value: raw}
	}
	return PlanIdentifier{Kind: PlanIdentifierName, Value: raw}
}

// providerPlanCodes maps a plan's display name to the financing
// provider's own plan-type code. An unmapped name is a hard error, not
// a silent default.
var providerPlanCodes = map[string]string{
	"essential car plan": "1",
	"premium car plan":   "2",
	"elite car plan":     "3",
	"van plan":           "4",
	"motorbike plan":     "5",
}

// PlanService resolves plan identifiers against reference data, with a
// Redis read-through cache in front of the repository.
type PlanService struct {
	planRepo repository.PlanRepository
	cache    redis.CacheStoreInterface
}

// NewPlanService creates a new PlanService. The cache may be nil.
func NewPlanService(planRepo repository.PlanRepository, cache redis.CacheStoreInterface) *PlanService {
	return &PlanService{planRepo: planRepo, cache: cache}
}

// Resolve looks up the plan behind an identifier. Returns
// repository.ErrNotFound when no record matches.
func (s *PlanService) Resolve(ctx context.Context, id PlanIdentifier) (*domain.Plan, error) {
	cacheKey := strings.ToLower(id.Value)

	if s.cache != nil {
		cached, err := s.cache.GetPlan(ctx, cacheKey)
		if err == nil && cached != nil {
			return &domain.Plan{
				ID:       cached.ID,
				Name:     cached.Name,
				Category: domain.PlanCategory(cached.Category),
			}, nil
		}
		// Cache errors fall through to the repository.
	}

	var (
		plan *domain.Plan
		err  error
	)
	switch id.Kind {
	case PlanIdentifierID:
		plan, err = s.planRepo.GetByID(ctx, id.Value)
	default:
		plan, err = s.planRepo.GetByName(ctx, id.Value)
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetPlan(ctx, cacheKey, &redis.CachedPlan{
			ID:       plan.ID,
			Name:     plan.Name,
			Category: string(plan.Category),
		})
	}

	return plan, nil
}

// GetAll returns every plan.
func (s *PlanService) GetAll(ctx context.Context) ([]*domain.Plan, error) {
	return s.planRepo.GetAll(ctx)
}

// ProviderPlanCode maps a plan's display name to the provider's
// plan-type code. Returns ErrPlanCodeUnmapped for unknown names.
func ProviderPlanCode(planName string) (string, error) {
	code, ok := providerPlanCodes[strings.ToLower(planName)]
	if !ok {
		return "", ErrPlanCodeUnmapped
	}
	return code, nil
}
