package release_interface

import (
	"context"
	"io"

	"github.com/newreleases/admin-console/domain/domain_release/release_models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReleaseRowRepository 发布行的持久化，所有写入都是单行往返
type ReleaseRowRepository interface {
	// ListOrdered 按 order_index 升序返回全部行
	ListOrdered(ctx context.Context) ([]*release_models.ReleaseRow, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*release_models.ReleaseRow, error)
	// GetByGroupKey 返回 group_id 等于 key 的行，以及尚未回填 group_id 且 _id 等于 key 的行
	GetByGroupKey(ctx context.Context, key primitive.ObjectID) ([]*release_models.ReleaseRow, error)
	Insert(ctx context.Context, row *release_models.ReleaseRow) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) error
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// MediaStorage 对象存储
type MediaStorage interface {
	// Upload 不覆盖已存在的 key
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Remove(ctx context.Context, keys []string) error
	PublicURL(key string) string
}

// GroupLock 按分组键的单飞标记
type GroupLock interface {
	TryLock(ctx context.Context, key string) (bool, error)
	Unlock(ctx context.Context, key string) error
}
