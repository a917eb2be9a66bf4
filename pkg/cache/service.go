package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// Service stores JSON values in Redis.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	// GetMany decodes keys[i] into dests[i] with a single MGET. hits[i]
	// reports whether keys[i] was present and decoded.
	GetMany(ctx context.Context, keys []string, dests []interface{}) (hits []bool, err error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type service struct {
	client redis.Cmdable
}

func NewService(client redis.Cmdable) Service {
	return &service{client: client}
}

func (s *service) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("cache decode %s: %w", key, err)
	}
	return nil
}

func (s *service) GetMany(ctx context.Context, keys []string, dests []interface{}) ([]bool, error) {
	if len(keys) != len(dests) {
		return nil, fmt.Errorf("cache mget: %d keys for %d destinations", len(keys), len(dests))
	}
	hits := make([]bool, len(keys))
	if len(keys) == 0 {
		return hits, nil
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return hits, fmt.Errorf("cache mget: %w", err)
	}
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		// undecodable entries count as misses and get rewritten by the caller
		hits[i] = json.Unmarshal([]byte(str), dests[i]) == nil
	}
	return hits, nil
}

func (s *service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}
