package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/newreleases/admin-console/domain"
	"github.com/newreleases/admin-console/util/util_log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type indexSpec struct {
	collection string
	keys       bson.D
	name       string
	unique     bool
	partial    bson.M
}

var indexSpecs = []indexSpec{
	// 同一分组内每种语言只能有一行；尚未回填 group_id 的行不参与
	{
		collection: domain.CollectionReleaseRows,
		keys:       bson.D{{Key: "group_id", Value: 1}, {Key: "lang", Value: 1}},
		name:       "group_lang_unique",
		unique:     true,
		partial:    bson.M{"group_id": bson.M{"$type": "objectId"}},
	},
	{collection: domain.CollectionReleaseRows, keys: bson.D{{Key: "order_index", Value: 1}}, name: "order_index"},
	{collection: domain.CollectionReleaseRows, keys: bson.D{{Key: "updated_at", Value: -1}}, name: "updated_at"},
	{collection: domain.CollectionReleaseRows, keys: bson.D{{Key: "media_path", Value: 1}}, name: "media_path"},

	{collection: domain.CollectionAdminAccounts, keys: bson.D{{Key: "email", Value: 1}}, name: "email_unique", unique: true},
	{collection: domain.CollectionAdminGrants, keys: bson.D{{Key: "user_id", Value: 1}}, name: "user_id_unique", unique: true},
}

// CreateIndexes 已存在的同名索引会跳过，返回所有失败
func CreateIndexes(ctx context.Context, db Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var errs []error
	for _, spec := range indexSpecs {
		if err := createIndex(ctx, db.Collection(spec.collection), spec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func createIndex(ctx context.Context, collection Collection, spec indexSpec) error {
	specs, err := collection.Indexes().ListSpecifications(ctx)
	if err != nil {
		// 检查失败时仍然尝试创建
		util_log.Warn().Err(err).Str("collection", spec.collection).Msg("检查索引失败")
	}
	for _, existing := range specs {
		if existing.Name == spec.name {
			util_log.Debug().Str("index", spec.name).Msg("索引已存在，跳过创建")
			return nil
		}
	}

	opts := options.Index().SetName(spec.name)
	if spec.unique {
		opts.SetUnique(true)
	}
	if spec.partial != nil {
		opts.SetPartialFilterExpression(spec.partial)
	}

	model := mongo.IndexModel{Keys: spec.keys, Options: opts}
	if _, err := collection.Indexes().CreateOne(ctx, model); err != nil {
		util_log.Error().Err(err).Str("index", spec.name).Msg("创建索引失败")
		return fmt.Errorf("failed to create index %s on %s: %w", spec.name, spec.collection, err)
	}
	util_log.Info().Str("index", spec.name).Str("collection", spec.collection).Msg("索引创建成功")
	return nil
}
