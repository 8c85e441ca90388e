package taskstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/G381N/bug-besty/internal/core/services"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore maps bearer tokens to user ids with a TTL.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Put(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKeyPrefix+token, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (s *RedisSessionStore) Resolve(ctx context.Context, token string) (uint, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, services.ErrSessionInvalid
	}
	if err != nil {
		return 0, fmt.Errorf("resolve session: %w", err)
	}

	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, services.ErrSessionInvalid
	}
	return uint(userID), nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
