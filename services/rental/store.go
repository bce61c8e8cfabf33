package rental

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// Persistence keys. The ledger and the live draft are mirrored under these
// two namespaced keys; nothing else in the store belongs to this service.
const (
	LedgerKey = "rental:bookingResults"
	DraftKey  = "rental:currentBookingInfo"
)

// ErrKeyNotFound is returned by Store.Get when the key is absent.
var ErrKeyNotFound = errors.New("key not found")

// Store is the slice of the durable key-value collaborator the rental
// service relies on.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// RedisStore implements Store on a Redis client.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
