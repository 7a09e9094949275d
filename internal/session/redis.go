package session

import (
	"context" // Context for Redis operations
	"fmt"     // Error wrapping
	"time"    // Session lifetime

	"deluxe_membership/internal/domain" // Importing domain models
	"deluxe_membership/internal/utils"  // Utility functions

	"github.com/redis/go-redis/v9" // Redis client
)

const keyPrefix = "session:" // Redis key prefix for sessions

// RedisStore keeps sessions in Redis so every server instance sees the same registry
type RedisStore struct {
	rdb redis.Cmdable // Redis client
	ttl time.Duration // Session lifetime, normally the JWT TTL
}

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, token string, user domain.User) error {
	if err := utils.SetCache(ctx, s.rdb, keyPrefix+token, user, s.ttl); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (domain.User, error) {
	var user domain.User
	found, err := utils.GetCache(ctx, s.rdb, keyPrefix+token, &user)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to load session: %w", err)
	}
	if !found {
		return domain.User{}, ErrNotFound // Expired or never issued
	}
	return user, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return utils.DeleteCache(ctx, s.rdb, keyPrefix+token)
}
