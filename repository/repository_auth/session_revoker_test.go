package repository_auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRevoker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := &memorySessionRevoker{revoked: map[string]time.Time{}, now: func() time.Time { return now }}

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Hour))
	revoked, _ = r.IsRevoked(ctx, "jti-1")
	assert.True(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, _ = r.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked)
	assert.Empty(t, r.revoked)
}

func TestRedisSessionRevoker(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	r := NewRedisSessionRevoker(client)

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti-1", 30*time.Minute))
	assert.Equal(t, 30*time.Minute, mr.TTL(revokedPrefix+"jti-1"))

	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(31 * time.Minute)
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	// 已过期的令牌不需要记录
	require.NoError(t, r.Revoke(ctx, "jti-2", 0))
	assert.False(t, mr.Exists(revokedPrefix+"jti-2"))
}
