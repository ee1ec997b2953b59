package auth_interface

import (
	"context"
	"time"

	"github.com/newreleases/admin-console/domain/domain_auth/auth_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminAccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*auth_models.AdminAccount, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*auth_models.AdminAccount, error)
	Create(ctx context.Context, account *auth_models.AdminAccount) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
}

type AdminGrantRepository interface {
	IsAdmin(ctx context.Context, userID primitive.ObjectID) (bool, error)
	Grant(ctx context.Context, userID primitive.ObjectID) error
	Revoke(ctx context.Context, userID primitive.ObjectID) error
}

// SessionRevoker 记录已注销的令牌，直到其过期
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type SessionUsecase interface {
	SignInWithPassword(ctx context.Context, email, password string) (*auth_models.Session, error)
	GetSession(ctx context.Context, token string) (*auth_models.Session, error)
	SignOut(ctx context.Context, token string) error
}

type AdminAccountUsecase interface {
	AddAdmin(ctx context.Context, email, password, name string) (*auth_models.AdminAccount, error)
	RevokeAdmin(ctx context.Context, email string) error
}
