package utils

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenSessions records issued tokens in the auth cache so they can be
// revoked before they expire.
type TokenSessions struct {
	client *redis.Client
}

// NewTokenSessions binds the session store to a Redis client.
func NewTokenSessions(client *redis.Client) *TokenSessions {
	return &TokenSessions{client: client}
}

func sessionKey(role, subject, token string) string {
	return AuthCachePrefix + role + ":" + subject + ":" + HashToken(token)
}

// Save marks token as active for ttl.
func (s *TokenSessions) Save(ctx context.Context, role, subject, token string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(role, subject, token), time.Now().Unix(), ttl).Err()
}

// Active reports whether token was issued and has not been revoked.
func (s *TokenSessions) Active(ctx context.Context, role, subject, token string) (bool, error) {
	err := s.client.Get(ctx, sessionKey(role, subject, token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Revoke removes token from the active set.
func (s *TokenSessions) Revoke(ctx context.Context, role, subject, token string) error {
	return s.client.Del(ctx, sessionKey(role, subject, token)).Err()
}
