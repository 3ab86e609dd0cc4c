package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps session-scoped UI state. The selected category
// is a plain string under its own key so every view component reads the
// same value instead of listening for ad-hoc broadcast events.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a new RedisSessionStore
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
	}
}

var _ SessionStore = (*RedisSessionStore)(nil)

func (r *RedisSessionStore) key(sessionID string) string {
	return fmt.Sprintf("session:%s:category", sessionID)
}

// SetCategory records the selected category for a session
func (r *RedisSessionStore) SetCategory(ctx context.Context, sessionID, category string) error {
	if err := r.client.Set(ctx, r.key(sessionID), category, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save category selection: %w", err)
	}
	return nil
}

// GetCategory returns the selected category, "" when none is set
func (r *RedisSessionStore) GetCategory(ctx context.Context, sessionID string) (string, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read category selection: %w", err)
	}
	return val, nil
}
