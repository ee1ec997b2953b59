package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseRepository 通用Repository接口，提供标准CRUD操作
// T: 实体类型，必须包含ID字段
type BaseRepository[T any] interface {
	// 基础CRUD操作
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// 批量操作
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)

	// 查询操作
	GetByFilter(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]*T, error)
	GetOneByFilter(ctx context.Context, filter interface{}) (*T, error)
	Count(ctx context.Context, filter interface{}) (int64, error)

	// 验证和检查
	ExistsByFilter(ctx context.Context, filter interface{}) (bool, error)
}
