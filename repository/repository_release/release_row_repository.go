package repository_release

import (
	"context"
	"errors"
	"fmt"

	"github.com/newreleases/admin-console/domain/domain_release/release_interface"
	"github.com/newreleases/admin-console/domain/domain_release/release_models"
	"github.com/newreleases/admin-console/mongo"
	"github.com/newreleases/admin-console/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type releaseRowRepository struct {
	base *repository.BaseMongoRepository[release_models.ReleaseRow]
}

func NewReleaseRowRepository(db mongo.Database, collection string) release_interface.ReleaseRowRepository {
	return &releaseRowRepository{
		base: repository.NewBaseMongoRepository[release_models.ReleaseRow](db, collection),
	}
}

// ListOrdered order_index 升序，相同时按创建时间
func (r *releaseRowRepository) ListOrdered(ctx context.Context) ([]*release_models.ReleaseRow, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "order_index", Value: 1},
		{Key: "created_at", Value: 1},
	})
	rows, err := r.base.GetByFilter(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}
	return rows, nil
}

func (r *releaseRowRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*release_models.ReleaseRow, error) {
	if len(ids) == 0 {
		return []*release_models.ReleaseRow{}, nil
	}
	rows, err := r.base.GetByFilter(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get releases: %w", err)
	}
	return rows, nil
}

func (r *releaseRowRepository) GetByGroupKey(ctx context.Context, key primitive.ObjectID) ([]*release_models.ReleaseRow, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"group_id": key},
		bson.M{"_id": key, "group_id": nil},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	rows, err := r.base.GetByFilter(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get release group %s: %w", key.Hex(), err)
	}
	return rows, nil
}

func (r *releaseRowRepository) Insert(ctx context.Context, row *release_models.ReleaseRow) error {
	if row == nil {
		return errors.New("release row cannot be nil")
	}
	row.Tenant = nil
	if row.Bullets == nil {
		row.Bullets = []string{}
	}
	if err := r.base.Create(ctx, row); err != nil {
		// (group_id, lang) 唯一索引冲突
		if driver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", release_models.ErrDuplicateLanguage, row.Lang)
		}
		return fmt.Errorf("failed to insert release: %w", err)
	}
	return nil
}

// UpdateFields 单行 $set，未命中视为错误
func (r *releaseRowRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	doc := make(bson.M, len(set)+1)
	for k, v := range set {
		doc[k] = v
	}
	matched, err := r.base.UpdateByID(ctx, id, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update release %s: %w", id.Hex(), err)
	}
	if !matched {
		return fmt.Errorf("failed to update release %s: %w", id.Hex(), repository.ErrEntityNotFound)
	}
	return nil
}

func (r *releaseRowRepository) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	deleted, err := r.base.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete releases: %w", err)
	}
	return deleted, nil
}
