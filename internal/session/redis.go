package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"inkwell/internal/models"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis with a per-key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(token string) string {
	return redisKeyPrefix + token
}

// Create opens a new session for the principal and returns its token.
func (s *RedisStore) Create(ctx context.Context, principal models.Principal) (string, error) {
	token := newToken()
	payload, err := json.Marshal(principal)
	if err != nil {
		return "", fmt.Errorf("marshal principal: %w", err)
	}
	if err := s.client.Set(ctx, s.key(token), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token to its Principal.
func (s *RedisStore) Get(ctx context.Context, token string) (*models.Principal, error) {
	payload, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var principal models.Principal
	if err := json.Unmarshal(payload, &principal); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &principal, nil
}

// Refresh replaces the stored Principal, keeping the remaining TTL.
func (s *RedisStore) Refresh(ctx context.Context, token string, principal models.Principal) error {
	payload, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("marshal principal: %w", err)
	}
	ok, err := s.client.SetXX(ctx, s.key(token), payload, redis.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Destroy invalidates the token.
func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
