package cache

import (
	"context"
	"errors"
	"time"
)

// ErrLockLost is returned when a lease expired and another holder took the key.
var ErrLockLost = errors.New("lock no longer held")

// Cache stores JSON documents under string keys.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
}

// Lease is a held lock. Refresh pushes its expiry out by the original ttl.
type Lease interface {
	Refresh(ctx context.Context) error
	Release(ctx context.Context) error
}

// Locker hands out short-lived exclusive locks shared across service instances.
type Locker interface {
	// TryLock acquires key for ttl. ok is false when someone else holds it.
	TryLock(ctx context.Context, key string, ttl time.Duration) (lease Lease, ok bool, err error)
}
