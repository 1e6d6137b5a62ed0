package ports

import (
	"context"
	"time"
)

// Cache is a generic key-value capability. The dashboard layer uses it
// for short-lived response caching; adapters may back it with SQLite or
// any other store.
type Cache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
