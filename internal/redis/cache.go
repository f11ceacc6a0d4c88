package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles plan reference data caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// PlanCacheTTL is generous because plans are read-only reference data
// that only changes on deployment.
const PlanCacheTTL = 10 * time.Minute

const planCachePrefix = "cache:plan:"

// CachedPlan represents a cached plan entity.
type CachedPlan struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// GetPlan retrieves a plan from cache. A cache miss returns nil, nil.
func (s *CacheStore) GetPlan(ctx context.Context, key string) (*CachedPlan, error) {
	data, err := s.client.Get(ctx, planCachePrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var plan CachedPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// SetPlan stores a plan in cache under the given lookup key.
func (s *CacheStore) SetPlan(ctx context.Context, key string, plan *CachedPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, planCachePrefix+key, data, PlanCacheTTL).Err()
}

// InvalidatePlan removes a plan from cache.
func (s *CacheStore) InvalidatePlan(ctx context.Context, key string) error {
	return s.client.Del(ctx, planCachePrefix+key).Err()
}
