package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/newreleases/admin-console/domain"
	"github.com/newreleases/admin-console/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrEntityNotFound 按ID查询或删除时未命中
var ErrEntityNotFound = errors.New("entity not found")

// BaseMongoRepository MongoDB通用Repository实现
type BaseMongoRepository[T any] struct {
	db         mongo.Database
	collection string
	now        func() time.Time
}

// NewBaseMongoRepository 创建新的MongoDB Repository实例
func NewBaseMongoRepository[T any](db mongo.Database, collection string) *BaseMongoRepository[T] {
	return &BaseMongoRepository[T]{
		db:         db,
		collection: collection,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var _ domain.BaseRepository[struct{}] = (*BaseMongoRepository[struct{}])(nil)

// Create 创建新实体
func (r *BaseMongoRepository[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("entity cannot be nil")
	}

	// 设置创建时间（如果实体有相关字段）
	r.setTimestamps(entity, true)

	coll := r.db.Collection(r.collection)
	resultID, err := coll.InsertOne(ctx, entity)
	if err != nil {
		return fmt.Errorf("failed to create entity: %w", err)
	}

	// 设置生成的ID
	if oid, ok := resultID.(primitive.ObjectID); ok {
		r.setEntityID(entity, oid)
	}

	return nil
}

// GetByID 根据ID获取实体
func (r *BaseMongoRepository[T]) GetByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	if id.IsZero() {
		return nil, errors.New("id cannot be empty")
	}

	coll := r.db.Collection(r.collection)
	var entity T
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&entity)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, id.Hex())
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	return &entity, nil
}

// UpdateByID 根据ID更新指定字段，返回是否命中
func (r *BaseMongoRepository[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (bool, error) {
	if id.IsZero() {
		return false, errors.New("id cannot be empty")
	}

	// 添加更新时间
	if update["$set"] != nil {
		if setUpdate, ok := update["$set"].(bson.M); ok {
			setUpdate["updated_at"] = r.now()
		}
	} else {
		update["$set"] = bson.M{"updated_at": r.now()}
	}

	coll := r.db.Collection(r.collection)
	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return false, fmt.Errorf("failed to update entity: %w", err)
	}

	return result.MatchedCount > 0, nil
}

// Delete 删除实体
func (r *BaseMongoRepository[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	if id.IsZero() {
		return errors.New("id cannot be empty")
	}

	coll := r.db.Collection(r.collection)
	deletedCount, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}

	if deletedCount == 0 {
		return fmt.Errorf("%w: %s", ErrEntityNotFound, id.Hex())
	}

	return nil
}

// DeleteMany 批量删除
func (r *BaseMongoRepository[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	coll := r.db.Collection(r.collection)
	deletedCount, err := coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete entities: %w", err)
	}

	return deletedCount, nil
}

// GetByFilter 根据过滤条件获取实体
func (r *BaseMongoRepository[T]) GetByFilter(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]*T, error) {
	coll := r.db.Collection(r.collection)
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to find entities: %w", err)
	}
	defer cursor.Close(ctx)

	entities := make([]*T, 0)
	for cursor.Next(ctx) {
		var entity T
		if err := cursor.Decode(&entity); err != nil {
			return nil, fmt.Errorf("failed to decode entity: %w", err)
		}
		entities = append(entities, &entity)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entities: %w", err)
	}

	return entities, nil
}

// GetOneByFilter 根据过滤条件获取单个实体
func (r *BaseMongoRepository[T]) GetOneByFilter(ctx context.Context, filter interface{}) (*T, error) {
	coll := r.db.Collection(r.collection)
	var entity T
	err := coll.FindOne(ctx, filter).Decode(&entity)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil // 没找到返回nil，不是错误
		}
		return nil, fmt.Errorf("failed to find entity: %w", err)
	}

	return &entity, nil
}

// Count 统计数量
func (r *BaseMongoRepository[T]) Count(ctx context.Context, filter interface{}) (int64, error) {
	coll := r.db.Collection(r.collection)
	count, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count entities: %w", err)
	}

	return count, nil
}

// ExistsByFilter 根据过滤条件检查实体是否存在
func (r *BaseMongoRepository[T]) ExistsByFilter(ctx context.Context, filter interface{}) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

var timeType = reflect.TypeOf(time.Time{})

// 辅助方法：设置时间戳
func (r *BaseMongoRepository[T]) setTimestamps(entity *T, isCreate bool) {
	val := reflect.ValueOf(entity).Elem()
	if val.Kind() != reflect.Struct {
		return
	}
	typ := val.Type()
	now := r.now()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanSet() || field.Type() != timeType {
			continue
		}

		fieldName, _, _ := strings.Cut(typ.Field(i).Tag.Get("bson"), ",")
		if fieldName == "" {
			fieldName = typ.Field(i).Name
		}

		if isCreate && (fieldName == "created_at" || fieldName == "CreatedAt") {
			field.Set(reflect.ValueOf(now))
		}
		if fieldName == "updated_at" || fieldName == "UpdatedAt" {
			field.Set(reflect.ValueOf(now))
		}
	}
}

// 设置实体ID
func (r *BaseMongoRepository[T]) setEntityID(entity *T, id primitive.ObjectID) {
	val := reflect.ValueOf(entity).Elem()
	if val.Kind() != reflect.Struct {
		return
	}
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanSet() {
			continue
		}

		fieldName, _, _ := strings.Cut(typ.Field(i).Tag.Get("bson"), ",")
		if fieldName == "" {
			fieldName = typ.Field(i).Name
		}

		if fieldName != "_id" && fieldName != "ID" {
			continue
		}
		switch field.Type() {
		case reflect.TypeOf(primitive.ObjectID{}):
			field.Set(reflect.ValueOf(id))
			return
		case reflect.TypeOf(&primitive.ObjectID{}):
			newID := id
			field.Set(reflect.ValueOf(&newID))
			return
		}
	}
}
