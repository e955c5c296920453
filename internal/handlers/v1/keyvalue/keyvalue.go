// Package keyvalue exposes the cache as a small per-user string store.
package keyvalue

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/cache"
)

const keyPrefix = "kv:"

// Store is the part of the cache the endpoints use.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, dest any) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, bool, error)
	Remove(ctx context.Context, key string) (bool, error)
}

type KeyInput struct {
	Key string `path:"key" minLength:"1" maxLength:"200" doc:"Cache key"`
}

// checkAvailable rejects requests when the server runs without Redis. The
// no-op cache would accept a PUT and then answer the next GET with 404.
func checkAvailable(store Store) error {
	if _, noop := store.(cache.NoopCache); noop {
		return huma.Error503ServiceUnavailable("cache is not configured")
	}
	return nil
}

// storeKey scopes key to the caller so users never see each other's entries.
func storeKey(userID uuid.UUID, key string) string {
	return keyPrefix + userID.String() + ":" + key
}
