package session

import (
	"context"
	"sync"
	"time"

	"musicminds/utils"

	"github.com/go-redis/redis/v8"
)

const revokedPrefix = "revokedToken:"

// RedisStore keeps revoked token hashes in redis so every gateway replica sees a
// logout.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a connected client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Set(ctx, revokedPrefix+utils.HashToken(token), 1, ttl).Err()
}

func (s *RedisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedPrefix+utils.HashToken(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryStore is the single-process fallback when redis is disabled.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, exp := range s.revoked {
		if !now.Before(exp) {
			delete(s.revoked, k)
		}
	}
	s.revoked[utils.HashToken(token)] = now.Add(ttl)
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[utils.HashToken(token)]
	return ok && s.now().Before(exp), nil
}
