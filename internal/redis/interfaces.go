package redis

import (
	"context"
	"time"
)

// CacheStoreInterface defines the interface for plan caching.
type CacheStoreInterface interface {
	GetPlan(ctx context.Context, key string) (*CachedPlan, error)
	SetPlan(ctx context.Context, key string, plan *CachedPlan) error
	InvalidatePlan(ctx context.Context, key string) error
}

// LockStoreInterface defines the interface for callback locking.
type LockStoreInterface interface {
	AcquireCallbackLock(ctx context.Context, reference string, ttl time.Duration) (bool, error)
	ReleaseCallbackLock(ctx context.Context, reference string) error
}

// Ensure concrete types implement interfaces.
var (
	_ CacheStoreInterface = (*CacheStore)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
)
