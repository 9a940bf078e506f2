package gateway

import "context"

// CacheDriver is the subset of the key-value store the cache gateways
// need. Implemented by rediscache.Store.
type CacheDriver interface {
	GetJSON(ctx context.Context, key string, dest any) (found bool, err error)
	SetJSON(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
