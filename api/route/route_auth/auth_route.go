package route_auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newreleases/admin-console/api/controller/controller_auth"
	"github.com/newreleases/admin-console/api/middleware"
	"github.com/newreleases/admin-console/domain"
	"github.com/newreleases/admin-console/domain/domain_auth/auth_interface"
	"github.com/newreleases/admin-console/mongo"
	"github.com/newreleases/admin-console/repository/repository_auth"
	"github.com/newreleases/admin-console/usecase/usecase_auth"
)

type SessionConfig struct {
	Secret  string
	Expiry  time.Duration
	Revoker auth_interface.SessionRevoker
}

// NewSessionUsecase 登录路由和鉴权中间件共用
func NewSessionUsecase(timeout time.Duration, db mongo.Database, cfg SessionConfig) auth_interface.SessionUsecase {
	accounts := repository_auth.NewAdminAccountRepository(db, domain.CollectionAdminAccounts)
	grants := repository_auth.NewAdminGrantRepository(db, domain.CollectionAdminGrants)
	return usecase_auth.NewSessionUsecase(accounts, grants, cfg.Revoker, cfg.Secret, cfg.Expiry, timeout)
}

func NewAuthRouter(
	sessions auth_interface.SessionUsecase,
	group *gin.RouterGroup,
	loginLimiter *middleware.IPRateLimiter,
) {
	ctrl := controller_auth.NewSessionController(sessions)

	authGroup := group.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitMiddleware(loginLimiter), ctrl.Login)
		authGroup.POST("/logout", ctrl.Logout)
		authGroup.GET("/session", ctrl.Session)
	}
}
