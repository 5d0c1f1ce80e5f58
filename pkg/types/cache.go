package types

import (
	"context"
	"time"
)

// Cache is the synchronous key-value mirror used by the document store.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	SetEx(ctx context.Context, key, value string, expiresAt time.Duration) error
	Expire(ctx context.Context, key string, expiration time.Duration) error
}
