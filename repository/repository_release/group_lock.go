package repository_release

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/newreleases/admin-console/domain/domain_release/release_interface"
	"github.com/redis/go-redis/v9"
)

// memoryGroupLock 单实例部署使用
type memoryGroupLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemoryGroupLock() release_interface.GroupLock {
	return &memoryGroupLock{held: make(map[string]struct{})}
}

func (l *memoryGroupLock) TryLock(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return false, nil
	}
	l.held[key] = struct{}{}
	return true, nil
}

func (l *memoryGroupLock) Unlock(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

const groupLockPrefix = "releases:status-lock:"

// 只删除自己持有的锁
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisGroupLock 多实例部署，TTL 防止进程崩溃后锁残留
type redisGroupLock struct {
	client redis.UniversalClient
	ttl    time.Duration

	mu     sync.Mutex
	tokens map[string]string
}

func NewRedisGroupLock(client redis.UniversalClient, ttl time.Duration) release_interface.GroupLock {
	return &redisGroupLock{
		client: client,
		ttl:    ttl,
		tokens: make(map[string]string),
	}
}

func (l *redisGroupLock) TryLock(ctx context.Context, key string) (bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, groupLockPrefix+key, token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire group lock: %w", err)
	}
	if !ok {
		return false, nil
	}
	l.mu.Lock()
	l.tokens[key] = token
	l.mu.Unlock()
	return true, nil
}

func (l *redisGroupLock) Unlock(ctx context.Context, key string) error {
	l.mu.Lock()
	token, ok := l.tokens[key]
	delete(l.tokens, key)
	l.mu.Unlock()
	if !ok {
		return nil
	}
	if err := unlockScript.Run(ctx, l.client, []string{groupLockPrefix + key}, token).Err(); err != nil {
		return fmt.Errorf("failed to release group lock: %w", err)
	}
	return nil
}
