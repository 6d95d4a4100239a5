package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"localconnect/models"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "cart:"

// Store persists cart state between requests.
type Store interface {
	Load(ctx context.Context, cartID string) (*models.CartState, error)
	Save(ctx context.Context, state *models.CartState) error
	Delete(ctx context.Context, cartID string) error
}

// RedisStore keeps each cart as a JSON document with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store on client. A zero ttl keeps carts for a week.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Load returns the stored cart or ErrCartNotFound.
func (s *RedisStore) Load(ctx context.Context, cartID string) (*models.CartState, error) {
	data, err := s.client.Get(ctx, keyPrefix+cartID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %s: %w", cartID, err)
	}
	var state models.CartState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", cartID, err)
	}
	return &state, nil
}

// Save writes the cart and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, state *models.CartState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+state.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", state.ID, err)
	}
	return nil
}

// Delete removes the cart.
func (s *RedisStore) Delete(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, keyPrefix+cartID).Err(); err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", cartID, err)
	}
	return nil
}
