package route

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newreleases/admin-console/api/middleware"
	"github.com/newreleases/admin-console/api/route/route_auth"
	"github.com/newreleases/admin-console/api/route/route_release"
	"github.com/newreleases/admin-console/bootstrap"
	"github.com/newreleases/admin-console/domain/domain_auth/auth_interface"
	"github.com/newreleases/admin-console/domain/domain_release/release_interface"
	"github.com/newreleases/admin-console/mongo"
)

type Deps struct {
	DB      mongo.Database
	Storage release_interface.MediaStorage
	Revoker auth_interface.SessionRevoker
	Lock    release_interface.GroupLock
}

func Setup(env *bootstrap.Env, timeout time.Duration, deps Deps, r *gin.Engine) {
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(env.AllowedOrigins()))

	r.GET("/health", healthHandler(deps.DB))

	sessions := route_auth.NewSessionUsecase(timeout, deps.DB, route_auth.SessionConfig{
		Secret:  env.AccessTokenSecret,
		Expiry:  env.AccessTokenExpiry(),
		Revoker: deps.Revoker,
	})

	publicRouter := r.Group("/api")
	route_auth.NewAuthRouter(sessions, publicRouter, middleware.PerMinute(env.LoginRatePerMinute))

	protectedRouter := r.Group("/api")
	protectedRouter.Use(middleware.JwtAuthMiddleware(sessions))
	route_release.NewReleaseRouter(timeout, deps.DB, protectedRouter, deps.Storage, deps.Lock)
}

func healthHandler(db mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Client().Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
	}
}
