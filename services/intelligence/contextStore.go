package ai

import (
	"context"
	"encoding/json"
	"time"

	"localconnect/models"

	"github.com/go-redis/redis/v8"
)

const aiContextPrefix = "ai:chat:"

// DefaultContextTTL is how long an idle conversation is remembered.
const DefaultContextTTL = 30 * time.Minute

type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	if ttl <= 0 {
		ttl = DefaultContextTTL
	}
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, sessionID string) (*models.ChatContext, error) {
	data, err := s.client.Get(ctx, aiContextPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return &models.ChatContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var chat models.ChatContext
	if err := json.Unmarshal(data, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

func (s *RedisContextStore) Set(ctx context.Context, sessionID string, chat *models.ChatContext) error {
	b, err := json.Marshal(chat)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, aiContextPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, aiContextPrefix+sessionID).Err()
}
