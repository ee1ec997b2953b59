package controller_auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newreleases/admin-console/api/controller"
	"github.com/newreleases/admin-console/api/middleware"
	"github.com/newreleases/admin-console/domain/domain_auth/auth_interface"
	"github.com/newreleases/admin-console/domain/domain_auth/auth_models"
	"github.com/newreleases/admin-console/util/util_log"
)

type SessionController struct {
	SessionUsecase auth_interface.SessionUsecase
}

func NewSessionController(uc auth_interface.SessionUsecase) *SessionController {
	return &SessionController{SessionUsecase: uc}
}

// Login 签发令牌并写入 cookie，同时在响应体中返回
func (ctrl *SessionController) Login(c *gin.Context) {
	var req auth_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	session, err := ctrl.SessionUsecase.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, auth_models.ErrInvalidCredentials) {
		controller.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
		return
	}
	if errors.Is(err, auth_models.ErrNotAuthorized) {
		middleware.SessionErrorResponse(c, err)
		return
	}
	if err != nil {
		util_log.Error().Err(err).Msg("sign in failed")
		controller.ErrorResponse(c, http.StatusInternalServerError, "SERVER_ERROR", "internal server error")
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	middleware.SetSessionCookie(c, session.Token, maxAge)
	util_log.Info().Str("user_id", session.UserID).Msg("signed in")
	controller.SuccessResponse(c, "session", session, 1)
}

// Logout 令牌无效时同样返回成功
func (ctrl *SessionController) Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if token != "" {
		if err := ctrl.SessionUsecase.SignOut(c.Request.Context(), token); err != nil {
			util_log.Error().Err(err).Msg("sign out failed")
			controller.ErrorResponse(c, http.StatusInternalServerError, "SERVER_ERROR", "internal server error")
			return
		}
	}
	middleware.ClearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

// Session 当前会话，前端据此决定跳转
func (ctrl *SessionController) Session(c *gin.Context) {
	session, err := ctrl.SessionUsecase.GetSession(c.Request.Context(), middleware.TokenFromRequest(c))
	if err != nil {
		middleware.SessionErrorResponse(c, err)
		return
	}
	session.Token = ""
	controller.SuccessResponse(c, "session", session, 1)
}
