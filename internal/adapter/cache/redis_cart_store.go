package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
	"github.com/ROCKERZ109/lillasure-website/internal/usecase"
)

// RedisCartStore persists one cart per session under a single key,
// rewritten whole on every save. Concurrent sessions writing the same
// key are last-write-wins.
type RedisCartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCartStore(rdb *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{rdb: rdb, ttl: ttl}
}

func cartKey(sessionID string) string { return "cart:" + sessionID }

func (s *RedisCartStore) Load(ctx context.Context, sessionID string) ([]domain.CartItem, bool, error) {
	raw, err := s.rdb.Get(ctx, cartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cart load: %w", err)
	}
	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("cart decode: %w", err)
	}
	return items, true, nil
}

func (s *RedisCartStore) Save(ctx context.Context, sessionID string, items []domain.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart encode: %w", err)
	}
	if err := s.rdb.Set(ctx, cartKey(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("cart save: %w", err)
	}
	return nil
}

var _ usecase.CartStore = (*RedisCartStore)(nil)
