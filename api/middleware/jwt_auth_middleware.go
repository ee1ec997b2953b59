package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/newreleases/admin-console/api/controller"
	"github.com/newreleases/admin-console/domain/domain_auth/auth_interface"
	"github.com/newreleases/admin-console/domain/domain_auth/auth_models"
	"github.com/newreleases/admin-console/util/util_log"
)

const (
	// SessionCookie 浏览器端保存令牌的 cookie
	SessionCookie = "releases_session"

	ContextUserID  = "x-user-id"
	ContextSession = "x-session"
)

// TokenFromRequest Authorization: Bearer 优先，其次 cookie
func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return token
}

// JwtAuthMiddleware 没有会话返回 401；不是管理员返回 403 并要求跳转到首页
func JwtAuthMiddleware(sessions auth_interface.SessionUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessions.GetSession(c.Request.Context(), TokenFromRequest(c))
		if err != nil {
			SessionErrorResponse(c, err)
			return
		}
		c.Set(ContextUserID, session.UserID)
		c.Set(ContextSession, session)
		c.Next()
	}
}

// SessionErrorResponse 会话错误到状态码的映射
func SessionErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth_models.ErrNotAuthorized):
		ClearSessionCookie(c)
		controller.ErrorDetailsResponse(c, http.StatusForbidden, "FORBIDDEN", err.Error(), gin.H{"redirect": "/"})
	case errors.Is(err, auth_models.ErrNoSession):
		controller.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	default:
		util_log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("session lookup failed")
		controller.ErrorResponse(c, http.StatusInternalServerError, "SERVER_ERROR", "internal server error")
	}
}

// SetSessionCookie HttpOnly，有效期与令牌一致
func SetSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", c.Request.TLS != nil, true)
}

func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
}
