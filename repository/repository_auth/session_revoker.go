package repository_auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/newreleases/admin-console/domain/domain_auth/auth_interface"
	"github.com/redis/go-redis/v9"
)

type memorySessionRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemorySessionRevoker() auth_interface.SessionRevoker {
	return &memorySessionRevoker{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *memorySessionRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	// 顺便清理过期记录
	for id, until := range r.revoked {
		if now.After(until) {
			delete(r.revoked, id)
		}
	}
	r.revoked[tokenID] = now.Add(ttl)
	return nil
}

func (r *memorySessionRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if r.now().After(until) {
		delete(r.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

const revokedPrefix = "releases:revoked:"

type redisSessionRevoker struct {
	client redis.UniversalClient
}

func NewRedisSessionRevoker(client redis.UniversalClient) auth_interface.SessionRevoker {
	return &redisSessionRevoker{client: client}
}

func (r *redisSessionRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (r *redisSessionRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Get(ctx, revokedPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return true, nil
}
