package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/newreleases/admin-console/util/util_log"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient 未配置 REDIS_ADDR 时返回 nil，调用方回退到进程内实现
func NewRedisClient(env *Env) (*redis.Client, error) {
	if env.RedisAddr == "" {
		util_log.Warn().Msg("REDIS_ADDR not set, using in-memory session revocation and status locks")
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     env.RedisAddr,
		Password: env.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect redis at %s: %w", env.RedisAddr, err)
	}
	util_log.Info().Str("addr", env.RedisAddr).Msg("connected to redis")
	return client, nil
}
