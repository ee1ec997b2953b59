package usecase_auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/newreleases/admin-console/domain/domain_auth/auth_interface"
	"github.com/newreleases/admin-console/domain/domain_auth/auth_models"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrWeakPassword = fmt.Errorf("password must be at least %d characters", minPasswordLength)
)

type AdminAccountUsecase struct {
	accounts auth_interface.AdminAccountRepository
	grants   auth_interface.AdminGrantRepository
	timeout  time.Duration
}

func NewAdminAccountUsecase(
	accounts auth_interface.AdminAccountRepository,
	grants auth_interface.AdminGrantRepository,
	timeout time.Duration,
) *AdminAccountUsecase {
	return &AdminAccountUsecase{
		accounts: accounts,
		grants:   grants,
		timeout:  timeout,
	}
}

var _ auth_interface.AdminAccountUsecase = (*AdminAccountUsecase)(nil)

// AddAdmin 账号不存在时创建；已存在时更新密码，然后加入白名单
func (uc *AdminAccountUsecase) AddAdmin(ctx context.Context, email, password, name string) (*auth_models.AdminAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := uc.accounts.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, auth_models.ErrAccountNotFound):
		account = &auth_models.AdminAccount{
			Email:    email,
			Password: string(hash),
			Name:     strings.TrimSpace(name),
		}
		if err := uc.accounts.Create(ctx, account); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := uc.accounts.UpdatePassword(ctx, account.ID, string(hash)); err != nil {
			return nil, err
		}
		account.Password = string(hash)
	}

	if err := uc.grants.Grant(ctx, account.ID); err != nil {
		return nil, fmt.Errorf("failed to grant admin: %w", err)
	}
	return account, nil
}

// RevokeAdmin 只移出白名单，账号保留
func (uc *AdminAccountUsecase) RevokeAdmin(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	account, err := uc.accounts.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return uc.grants.Revoke(ctx, account.ID)
}
