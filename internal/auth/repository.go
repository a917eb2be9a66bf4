package auth

import (
	"context"
	"errors"
	"time"

	"eventx/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// NonceStore keeps one outstanding nonce per address.
type NonceStore interface {
	Save(ctx context.Context, address, nonce string, ttl time.Duration) error
	// Take returns and removes the nonce, so each one verifies at most once.
	Take(ctx context.Context, address string) (string, error)
}

type redisNonceStore struct {
	client *redis.Client
}

func NewRedisNonceStore(client *redis.Client) NonceStore {
	return &redisNonceStore{client: client}
}

func (r *redisNonceStore) Save(ctx context.Context, address, nonce string, ttl time.Duration) error {
	return r.client.Set(ctx, constants.BuildAuthNonceKey(address), nonce, ttl).Err()
}

func (r *redisNonceStore) Take(ctx context.Context, address string) (string, error) {
	nonce, err := r.client.GetDel(ctx, constants.BuildAuthNonceKey(address)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNonceNotFound
	}
	return nonce, err
}
