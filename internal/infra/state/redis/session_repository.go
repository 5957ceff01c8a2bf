// Package redisstate keeps short-lived server state in Redis.
package redisstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"personal-workspace/internal/repository"
)

// RedisSessionRepository is the Redis implementation of repository.SessionRepository.
// Each session is one JSON string key that expires with the session.
type RedisSessionRepository struct {
	client    redis.Cmdable
	keyPrefix string
}

// NewRedisSessionRepository creates a RedisSessionRepository.
func NewRedisSessionRepository(client redis.Cmdable, keyPrefix string) *RedisSessionRepository {
	if client == nil {
		panic("redis client cannot be nil for RedisSessionRepository")
	}
	if keyPrefix == "" {
		keyPrefix = "ws:"
	}
	return &RedisSessionRepository{client: client, keyPrefix: keyPrefix}
}

func (r *RedisSessionRepository) sessionKey(id string) string {
	return r.keyPrefix + "session:" + id
}

func (r *RedisSessionRepository) Create(ctx context.Context, session repository.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis: failed to encode session %s: %w", session.ID, err)
	}
	key := r.sessionKey(session.ID)
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to store session at %s: %w", key, err)
	}
	return nil
}

func (r *RedisSessionRepository) Find(ctx context.Context, id string) (*repository.Session, error) {
	key := r.sessionKey(id)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis: failed to load session from %s: %w", key, err)
	}

	var session repository.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("redis: corrupt session at %s: %w", key, err)
	}
	return &session, nil
}

// Delete removes the session. Deleting an unknown session is not an error.
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	key := r.sessionKey(id)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis: failed to delete session at %s: %w", key, err)
	}
	return nil
}
