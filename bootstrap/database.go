package bootstrap

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/newreleases/admin-console/mongo"
	"github.com/newreleases/admin-console/util/util_log"
)

// MongoURI 没有用户名时不带认证信息
func (env *Env) MongoURI() string {
	host := fmt.Sprintf("%s:%s", env.DBHost, env.DBPort)
	if env.DBUser == "" {
		return fmt.Sprintf("mongodb://%s", host)
	}
	return fmt.Sprintf("mongodb://%s@%s", url.UserPassword(env.DBUser, env.DBPass).String(), host)
}

func NewMongoDatabase(env *Env) (mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.NewClient(env.MongoURI())
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect mongo: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	util_log.Info().Str("host", env.DBHost).Str("db", env.DBName).Msg("connected to mongo")
	return client, nil
}

func CloseMongoDBConnection(client mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		util_log.Error().Err(err).Msg("failed to close mongo connection")
		return
	}
	util_log.Info().Msg("connection to mongo closed")
}
