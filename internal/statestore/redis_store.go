package statestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed OAuth state store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "oauth_state:",
	}
}

func (r *RedisStore) key(state string) string {
	return r.prefix + state
}

func (r *RedisStore) Save(ctx context.Context, state, codeVerifier string, ttl time.Duration) error {
	if state == "" || codeVerifier == "" {
		return fmt.Errorf("statestore: missing state or verifier")
	}
	if ttl <= 0 {
		return fmt.Errorf("statestore: ttl must be positive")
	}
	return r.client.Set(ctx, r.key(state), codeVerifier, ttl).Err()
}

func (r *RedisStore) Consume(ctx context.Context, state string) (string, error) {
	// GETDEL makes redemption atomic: two callbacks racing on the same
	// state cannot both succeed.
	val, err := r.client.GetDel(ctx, r.key(state)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}
