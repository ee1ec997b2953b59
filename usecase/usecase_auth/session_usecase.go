package usecase_auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/newreleases/admin-console/domain/domain_auth/auth_interface"
	"github.com/newreleases/admin-console/domain/domain_auth/auth_models"
	"github.com/newreleases/admin-console/internal/tokenutil"
	"github.com/newreleases/admin-console/util/util_log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type SessionUsecase struct {
	accounts auth_interface.AdminAccountRepository
	grants   auth_interface.AdminGrantRepository
	revoker  auth_interface.SessionRevoker
	secret   string
	expiry   time.Duration
	timeout  time.Duration
	now      func() time.Time
}

func NewSessionUsecase(
	accounts auth_interface.AdminAccountRepository,
	grants auth_interface.AdminGrantRepository,
	revoker auth_interface.SessionRevoker,
	secret string,
	expiry time.Duration,
	timeout time.Duration,
) *SessionUsecase {
	return &SessionUsecase{
		accounts: accounts,
		grants:   grants,
		revoker:  revoker,
		secret:   secret,
		expiry:   expiry,
		timeout:  timeout,
		now:      time.Now,
	}
}

var _ auth_interface.SessionUsecase = (*SessionUsecase)(nil)

// SignInWithPassword 账号不存在和密码错误返回同一个错误。
// 不在管理员白名单中的账号不签发令牌。
func (uc *SessionUsecase) SignInWithPassword(ctx context.Context, email, password string) (*auth_models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if strings.TrimSpace(email) == "" || password == "" {
		return nil, auth_models.ErrInvalidCredentials
	}
	account, err := uc.accounts.GetByEmail(ctx, email)
	if errors.Is(err, auth_models.ErrAccountNotFound) {
		return nil, auth_models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, auth_models.ErrInvalidCredentials
	}
	isAdmin, err := uc.grants.IsAdmin(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		util_log.Warn().Str("user_id", account.ID.Hex()).Msg("sign in refused: not an admin")
		return nil, auth_models.ErrNotAuthorized
	}

	token, claims, err := tokenutil.CreateAccessToken(account.ID.Hex(), uc.secret, uc.expiry, uc.now())
	if err != nil {
		return nil, err
	}
	return &auth_models.Session{
		Token:     token,
		TokenID:   claims.ID,
		UserID:    account.ID.Hex(),
		Email:     account.Email,
		Name:      account.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// GetSession 登录后被移出白名单的账号会被强制注销
func (uc *SessionUsecase) GetSession(ctx context.Context, token string) (*auth_models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if token == "" {
		return nil, auth_models.ErrNoSession
	}
	claims, err := tokenutil.ParseAccessToken(token, uc.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", auth_models.ErrNoSession, err)
	}
	revoked, err := uc.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, auth_models.ErrNoSession
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", auth_models.ErrNoSession, err)
	}
	isAdmin, err := uc.grants.IsAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		if err := uc.revoker.Revoke(ctx, claims.ID, tokenutil.RemainingTTL(claims, uc.now())); err != nil {
			util_log.Warn().Err(err).Str("user_id", claims.UserID).Msg("failed to revoke session")
		}
		return nil, auth_models.ErrNotAuthorized
	}

	account, err := uc.accounts.GetByID(ctx, userID)
	if errors.Is(err, auth_models.ErrAccountNotFound) {
		return nil, auth_models.ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return &auth_models.Session{
		Token:     token,
		TokenID:   claims.ID,
		UserID:    claims.UserID,
		Email:     account.Email,
		Name:      account.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// SignOut 无效或已过期的令牌直接忽略
func (uc *SessionUsecase) SignOut(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	claims, err := tokenutil.ParseAccessToken(token, uc.secret)
	if err != nil {
		return nil
	}
	return uc.revoker.Revoke(ctx, claims.ID, tokenutil.RemainingTTL(claims, uc.now()))
}
