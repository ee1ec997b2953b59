package repository_auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/newreleases/admin-console/domain/domain_auth/auth_interface"
	"github.com/newreleases/admin-console/domain/domain_auth/auth_models"
	"github.com/newreleases/admin-console/mongo"
	"github.com/newreleases/admin-console/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type adminAccountRepository struct {
	base *repository.BaseMongoRepository[auth_models.AdminAccount]
}

func NewAdminAccountRepository(db mongo.Database, collection string) auth_interface.AdminAccountRepository {
	return &adminAccountRepository{
		base: repository.NewBaseMongoRepository[auth_models.AdminAccount](db, collection),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *adminAccountRepository) GetByEmail(ctx context.Context, email string) (*auth_models.AdminAccount, error) {
	account, err := r.base.GetOneByFilter(ctx, bson.M{"email": normalizeEmail(email)})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, auth_models.ErrAccountNotFound
	}
	return account, nil
}

func (r *adminAccountRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*auth_models.AdminAccount, error) {
	account, err := r.base.GetByID(ctx, id)
	if errors.Is(err, repository.ErrEntityNotFound) {
		return nil, auth_models.ErrAccountNotFound
	}
	return account, err
}

func (r *adminAccountRepository) Create(ctx context.Context, account *auth_models.AdminAccount) error {
	account.Email = normalizeEmail(account.Email)
	exists, err := r.base.ExistsByFilter(ctx, bson.M{"email": account.Email})
	if err != nil {
		return err
	}
	if exists {
		return auth_models.ErrAccountExists
	}
	return r.base.Create(ctx, account)
}

func (r *adminAccountRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	matched, err := r.base.UpdateByID(ctx, id, bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return err
	}
	if !matched {
		return auth_models.ErrAccountNotFound
	}
	return nil
}

type adminGrantRepository struct {
	base *repository.BaseMongoRepository[auth_models.AdminGrant]
}

func NewAdminGrantRepository(db mongo.Database, collection string) auth_interface.AdminGrantRepository {
	return &adminGrantRepository{
		base: repository.NewBaseMongoRepository[auth_models.AdminGrant](db, collection),
	}
}

func (r *adminGrantRepository) IsAdmin(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	ok, err := r.base.ExistsByFilter(ctx, bson.M{"user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to check admin grant: %w", err)
	}
	return ok, nil
}

// Grant 已存在时不重复写入
func (r *adminGrantRepository) Grant(ctx context.Context, userID primitive.ObjectID) error {
	ok, err := r.IsAdmin(ctx, userID)
	if err != nil || ok {
		return err
	}
	return r.base.Create(ctx, &auth_models.AdminGrant{UserID: userID})
}

func (r *adminGrantRepository) Revoke(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.base.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
