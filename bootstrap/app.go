package bootstrap

import (
	"context"
	"time"

	"github.com/newreleases/admin-console/domain/domain_auth/auth_interface"
	"github.com/newreleases/admin-console/domain/domain_release/release_interface"
	"github.com/newreleases/admin-console/mongo"
	"github.com/newreleases/admin-console/repository/repository_auth"
	"github.com/newreleases/admin-console/repository/repository_release"
	"github.com/newreleases/admin-console/util/util_log"
	"github.com/redis/go-redis/v9"
)

// 状态切换锁的过期时间，防止进程崩溃后分组一直被锁住
const groupLockTTL = 30 * time.Second

type Application struct {
	Env     *Env
	Mongo   mongo.Client
	Redis   *redis.Client
	Storage release_interface.MediaStorage
	Revoker auth_interface.SessionRevoker
	Lock    release_interface.GroupLock
}

// App serve 使用，需要对象存储
func App(envPath string) (*Application, error) {
	app, err := newApplication(envPath)
	if err != nil {
		return nil, err
	}
	storage, err := NewMediaStorage(context.Background(), app.Env)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Storage = storage
	return app, nil
}

// AdminApp 命令行管理账号和索引，只连接数据库
func AdminApp(envPath string) (*Application, error) {
	return newApplication(envPath)
}

func newApplication(envPath string) (*Application, error) {
	env, err := NewEnv(envPath)
	if err != nil {
		return nil, err
	}
	util_log.Init(env.AppEnv)

	app := &Application{Env: env}
	app.Mongo, err = NewMongoDatabase(env)
	if err != nil {
		return nil, err
	}
	app.Redis, err = NewRedisClient(env)
	if err != nil {
		app.Close()
		return nil, err
	}

	if app.Redis != nil {
		app.Revoker = repository_auth.NewRedisSessionRevoker(app.Redis)
		app.Lock = repository_release.NewRedisGroupLock(app.Redis, groupLockTTL)
	} else {
		app.Revoker = repository_auth.NewMemorySessionRevoker()
		app.Lock = repository_release.NewMemoryGroupLock()
	}
	return app, nil
}

func (app *Application) Database() mongo.Database {
	return app.Mongo.Database(app.Env.DBName)
}

func (app *Application) Close() {
	CloseMongoDBConnection(app.Mongo)
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			util_log.Error().Err(err).Msg("failed to close redis")
		}
	}
}
