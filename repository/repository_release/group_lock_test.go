package repository_release

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGroupLock(t *testing.T) {
	ctx := context.Background()
	lock := NewMemoryGroupLock()

	ok, err := lock.TryLock(ctx, "g1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = lock.TryLock(ctx, "g1")
	assert.False(t, ok)

	ok, _ = lock.TryLock(ctx, "g2")
	assert.True(t, ok)

	require.NoError(t, lock.Unlock(ctx, "g1"))
	ok, _ = lock.TryLock(ctx, "g1")
	assert.True(t, ok)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisGroupLockSingleFlight(t *testing.T) {
	ctx := context.Background()
	mr, client := newRedis(t)
	first := NewRedisGroupLock(client, time.Minute)
	second := NewRedisGroupLock(client, time.Minute)

	ok, err := first.TryLock(ctx, "g1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists(groupLockPrefix+"g1"))
	assert.Equal(t, time.Minute, mr.TTL(groupLockPrefix+"g1"))

	ok, err = second.TryLock(ctx, "g1")
	require.NoError(t, err)
	assert.False(t, ok)

	// 非持有者释放不影响锁
	require.NoError(t, second.Unlock(ctx, "g1"))
	assert.True(t, mr.Exists(groupLockPrefix+"g1"))

	require.NoError(t, first.Unlock(ctx, "g1"))
	assert.False(t, mr.Exists(groupLockPrefix+"g1"))

	ok, err = second.TryLock(ctx, "g1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisGroupLockExpires(t *testing.T) {
	ctx := context.Background()
	mr, client := newRedis(t)
	lock := NewRedisGroupLock(client, 5*time.Second)

	ok, err := lock.TryLock(ctx, "g1")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(6 * time.Second)
	ok, err = NewRedisGroupLock(client, 5*time.Second).TryLock(ctx, "g1")
	require.NoError(t, err)
	assert.True(t, ok)

	// 锁已被他人持有，原持有者释放时不删除
	require.NoError(t, lock.Unlock(ctx, "g1"))
	assert.True(t, mr.Exists(groupLockPrefix+"g1"))
}

func TestRedisGroupLockUnavailable(t *testing.T) {
	mr, client := newRedis(t)
	mr.Close()

	_, err := NewRedisGroupLock(client, time.Minute).TryLock(context.Background(), "g1")
	assert.Error(t, err)
}
