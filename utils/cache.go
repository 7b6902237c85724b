package utils

import (
	"context"
	"sync"
	"time"

	"musicminds/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionCacheClient backs the logout denylist when redis is enabled.
var (
	SessionCacheClient *redis.Client
	sessionCacheOnce   sync.Once
)

// InitSessionCache initializes the Redis client for session bookkeeping. Unlike the
// other stores a failed ping is not fatal: the gateway falls back to memory.
func InitSessionCache() *redis.Client {
	if !config.AppConfig.RedisEnabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Warn("Redis (Session) unreachable, using in-memory session store",
			zap.String("addr", config.AppConfig.RedisAddr), zap.Error(err))
		_ = client.Close()
		return nil
	}
	SessionCacheClient = client
	return client
}

// GetSessionCacheClient returns the session client, or nil when redis is disabled.
func GetSessionCacheClient() *redis.Client {
	sessionCacheOnce.Do(func() {
		if SessionCacheClient == nil {
			InitSessionCache()
		}
	})
	return SessionCacheClient
}
