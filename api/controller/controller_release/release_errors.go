package controller_release

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newreleases/admin-console/api/controller"
	"github.com/newreleases/admin-console/domain/domain_release/release_models"
	"github.com/newreleases/admin-console/util/util_log"
	"github.com/newreleases/admin-console/util/util_media"
)

// releaseErrorResponse 业务错误到状态码和错误码的映射
func releaseErrorResponse(c *gin.Context, err error) {
	var partial *release_models.PartialWriteError
	if errors.As(err, &partial) {
		util_log.Warn().Err(err).Str("op", partial.Op).Msg("partial write")
		controller.ErrorDetailsResponse(c, http.StatusConflict, "PARTIAL_WRITE", err.Error(), partial.Details())
		return
	}

	var rejection *util_media.RejectionError
	switch {
	case errors.As(err, &rejection):
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", rejection.Message)
	case errors.Is(err, release_models.ErrValidation):
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, release_models.ErrDuplicateLanguage):
		controller.ErrorResponse(c, http.StatusConflict, "DUPLICATE_LANGUAGE", err.Error())
	case errors.Is(err, release_models.ErrOnlyTranslation):
		controller.ErrorResponse(c, http.StatusConflict, "ONLY_TRANSLATION", err.Error())
	case errors.Is(err, release_models.ErrStatusUpdateInProgress):
		controller.ErrorResponse(c, http.StatusConflict, "STATUS_UPDATE_IN_PROGRESS", err.Error())
	case errors.Is(err, release_models.ErrUploadFailed):
		controller.ErrorResponse(c, http.StatusBadGateway, "UPLOAD_FAILED", err.Error())
	case errors.Is(err, release_models.ErrGroupNotFound), errors.Is(err, release_models.ErrLanguageNotInGroup):
		controller.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		util_log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("release operation failed")
		controller.ErrorResponse(c, http.StatusInternalServerError, "SERVER_ERROR", "internal server error")
	}
}
