// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"localconnect/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CartCacheClient holds shopping-cart state.
	CartCacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// AIContextCacheClient holds chat-assistant conversation context.
	AIContextCacheClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitRedis initializes every Redis client used by the API.
func InitRedis() {
	GetCartCacheClient()
	GetAuthCacheClient()
	GetAIContextCacheClient()
}

// GetCartCacheClient returns the cart cache client.
func GetCartCacheClient() *redis.Client {
	if CartCacheClient == nil {
		CartCacheClient = newRedisClient(config.AppConfig.RedisCartDB, "Cart")
	}
	return CartCacheClient
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB, "Auth Cache")
	}
	return AuthCacheClient
}

// GetAIContextCacheClient returns the Redis client for chat context.
func GetAIContextCacheClient() *redis.Client {
	if AIContextCacheClient == nil {
		AIContextCacheClient = newRedisClient(config.AppConfig.RedisAIDB, "AI Context")
	}
	return AIContextCacheClient
}

// RedisClients lists the initialised clients, for health checks.
func RedisClients() []*redis.Client {
	var clients []*redis.Client
	for _, c := range []*redis.Client{CartCacheClient, AuthCacheClient, AIContextCacheClient} {
		if c != nil {
			clients = append(clients, c)
		}
	}
	return clients
}
