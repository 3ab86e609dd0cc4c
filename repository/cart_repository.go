package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"camelia-boutique/models"

	"github.com/redis/go-redis/v9"
)

// RedisCartStore persists each cart as a single JSON value with a TTL.
// Implements CartStore.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore creates a new RedisCartStore
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client: client,
		ttl:    ttl,
	}
}

// Ensure RedisCartStore implements CartStore
var _ CartStore = (*RedisCartStore)(nil)

func (r *RedisCartStore) key(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Load fetches the cart for a session. A missing key or an unparseable
// stored value both yield an empty cart.
func (r *RedisCartStore) Load(ctx context.Context, sessionID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return &models.Cart{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		log.Printf("⚠️  Corrupt cart state for session %s, starting empty: %v", sessionID, err)
		return &models.Cart{SessionID: sessionID}, nil
	}
	cart.SessionID = sessionID
	return &cart, nil
}

// Save writes the whole cart back under the session key
func (r *RedisCartStore) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := r.client.Set(ctx, r.key(cart.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the cart for a session
func (r *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
