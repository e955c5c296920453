// Package cache stores JSON values with an expiry. Redis backs it in
// production; NoopCache stands in when Redis is not configured.
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrEmptyKey = errors.New("cache key is empty")

// NoExpiry is reported by TTL for keys stored without an expiry.
const NoExpiry time.Duration = -1

type Cache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Get decodes the stored value into dest and reports whether the key existed.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	// TTL returns the remaining lifetime, NoExpiry, or false when the key is missing.
	TTL(ctx context.Context, key string) (time.Duration, bool, error)
	Remove(ctx context.Context, key string) (bool, error)
}

// NoopCache never stores anything.
type NoopCache struct{}

var _ Cache = NoopCache{}

func (NoopCache) Set(context.Context, string, any, time.Duration) error { return nil }

func (NoopCache) Get(context.Context, string, any) (bool, error) { return false, nil }

func (NoopCache) Exists(context.Context, string) (bool, error) { return false, nil }

func (NoopCache) TTL(context.Context, string) (time.Duration, bool, error) { return 0, false, nil }

func (NoopCache) Remove(context.Context, string) (bool, error) { return false, nil }
