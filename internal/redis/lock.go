package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore serializes callback processing per order reference.
// Duplicate provider callbacks for the same reference queue behind the
// lock instead of racing the status transition.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireCallbackLock attempts to acquire the lock for the given order
// reference. Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireCallbackLock(ctx context.Context, reference string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:callback:%s", reference)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseCallbackLock releases the lock for the given order reference.
func (s *LockStore) ReleaseCallbackLock(ctx context.Context, reference string) error {
	key := fmt.Sprintf("lock:callback:%s", reference)

	return s.client.Del(ctx, key).Err()
}
