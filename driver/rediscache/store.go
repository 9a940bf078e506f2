// Package rediscache implements the local persistent key-value store on
// Redis. Values are stored as JSON.
package rediscache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Store is a thin JSON layer over a Redis client. It reports "not found"
// separately from real errors so gateways can treat misses as empty lists.
type Store struct {
	client *redis.Client
}

// NewStore connects using a redis:// URL.
func NewStore(redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &Store{client: redis.NewClient(opts)}, nil
}

// NewStoreWithClient wraps an existing client. Used by tests.
func NewStoreWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

// GetJSON unmarshals the value at key into dest. A missing key is not an
// error; found reports whether the key existed.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) (found bool, err error) {
	raw, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) SetJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
