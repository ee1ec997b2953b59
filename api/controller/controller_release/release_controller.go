package controller_release

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newreleases/admin-console/api/controller"
	"github.com/newreleases/admin-console/domain/domain_release/release_interface"
	"github.com/newreleases/admin-console/domain/domain_release/release_models"
	"github.com/newreleases/admin-console/usecase/usecase_release"
	"github.com/newreleases/admin-console/util/util_month"
)

type ReleaseController struct {
	groups release_interface.ReleaseGroupUsecase
	table  release_interface.ReleaseTableUsecase
	forms  release_interface.ReleaseFormUsecase
	now    func() time.Time
}

func NewReleaseController(
	groups release_interface.ReleaseGroupUsecase,
	table release_interface.ReleaseTableUsecase,
	forms release_interface.ReleaseFormUsecase,
) *ReleaseController {
	return &ReleaseController{groups: groups, table: table, forms: forms, now: time.Now}
}

// ListGroups GET /groups?search=&lang=&status=
func (ctrl *ReleaseController) ListGroups(c *gin.Context) {
	state, err := tableStateFromQuery(c)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	groups, err := ctrl.groups.ListGroups(c.Request.Context())
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	filtered := usecase_release.Filter(groups, state)
	controller.SuccessResponse(c, "groups", filtered, len(filtered))
}

// Table GET /table?search=&lang=&status=&selected=
func (ctrl *ReleaseController) Table(c *gin.Context) {
	state, err := tableStateFromQuery(c)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	view, err := ctrl.table.View(c.Request.Context(), state)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	controller.SuccessResponse(c, "table", view, len(view.Rows))
}

// GetGroup 预览数据，附带共享字段不一致的报告
func (ctrl *ReleaseController) GetGroup(c *gin.Context) {
	key, err := parseGroupKey(c)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	preview, err := ctrl.groups.PreviewGroup(c.Request.Context(), key)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	controller.SuccessResponse(c, "group", gin.H{
		"preview":    preview,
		"mismatches": usecase_release.ConsistencyReport(preview.Group),
	}, 1)
}

// LoadEdit GET /groups/:key/edit?lang=
func (ctrl *ReleaseController) LoadEdit(c *gin.Context) {
	key, err := parseGroupKey(c)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	lang, err := release_models.ParseLang(c.Query("lang"))
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	form, err := ctrl.forms.LoadEdit(c.Request.Context(), key, lang)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	controller.SuccessResponse(c, "form", form, 1)
}

// CreateRelease POST /releases (multipart)
func (ctrl *ReleaseController) CreateRelease(c *gin.Context) {
	var req releaseFormRequest
	if err := c.ShouldBind(&req); err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	media, file, err := openMedia(c)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	row, err := ctrl.forms.SubmitCreate(c.Request.Context(), release_models.CreateForm{
		Lang:        req.Lang,
		Title:       req.Title,
		Bullets:     req.Bullets,
		Month:       req.Month,
		Year:        req.Year,
		Size:        release_models.Size(req.Size),
		OrderIndex:  req.OrderIndex,
		KBURL:       req.KBURL,
		ReleaseType: release_models.ReleaseType(req.ReleaseType),
		HasCost:     req.HasCost != nil && *req.HasCost,
		Media:       media,
	})
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	controller.CreatedResponse(c, "release", row)
}

// UpdateRelease PUT /groups/:key (multipart)，media 可选
func (ctrl *ReleaseController) UpdateRelease(c *gin.Context) {
	key, err := parseGroupKey(c)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	var req releaseFormRequest
	if err := c.ShouldBind(&req); err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	lang, err := release_models.ParseLang(req.Lang)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	media, file, err := openMedia(c)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	err = ctrl.forms.SubmitEdit(c.Request.Context(), key, release_models.EditForm{
		Lang:        lang,
		Title:       req.Title,
		Bullets:     req.Bullets,
		Month:       req.Month,
		Year:        req.Year,
		Size:        release_models.Size(req.Size),
		OrderIndex:  req.OrderIndex,
		KBURL:       req.KBURL,
		Published:   req.Published,
		ReleaseType: release_models.ReleaseType(req.ReleaseType),
		HasCost:     req.HasCost,
		Media:       media,
	})
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}

	group, err := ctrl.groups.GetGroup(c.Request.Context(), key)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	controller.SuccessResponse(c, "group", group, 1)
}

// SetStatus PATCH /groups/:key/status
func (ctrl *ReleaseController) SetStatus(c *gin.Context) {
	key, err := parseGroupKey(c)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := ctrl.table.SetStatus(c.Request.Context(), key, *req.Published); err != nil {
		releaseErrorResponse(c, err)
		return
	}
	controller.SuccessResponse(c, "published", *req.Published, 1)
}

// AddTranslation POST /groups/:key/translations
func (ctrl *ReleaseController) AddTranslation(c *gin.Context) {
	key, err := parseGroupKey(c)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	var req translationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	row, err := ctrl.forms.SubmitTranslation(c.Request.Context(), key, release_models.TranslationForm{
		Lang:    req.Lang,
		Title:   req.Title,
		Bullets: req.Bullets,
		Month:   req.Month,
		Year:    req.Year,
	})
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	controller.CreatedResponse(c, "release", row)
}

// RemoveTranslation DELETE /groups/:key/translations/:lang
func (ctrl *ReleaseController) RemoveTranslation(c *gin.Context) {
	key, err := parseGroupKey(c)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	lang, err := release_models.ParseLang(c.Param("lang"))
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	if err := ctrl.groups.RemoveTranslation(c.Request.Context(), key, lang); err != nil {
		releaseErrorResponse(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteGroup DELETE /groups/:key
func (ctrl *ReleaseController) DeleteGroup(c *gin.Context) {
	key, err := parseGroupKey(c)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	if err := ctrl.groups.DeleteGroup(c.Request.Context(), key); err != nil {
		releaseErrorResponse(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkDelete POST /bulk-delete
func (ctrl *ReleaseController) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	ids, err := parseIDs(req.Selected)
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	state, err := ctrl.table.BulkDelete(c.Request.Context(), release_models.NewTableState().WithSelected(ids))
	if err != nil {
		releaseErrorResponse(c, err)
		return
	}
	controller.SuccessResponse(c, "deleted", gin.H{
		"ids":   ids,
		"state": state,
	}, len(ids))
}

// Months GET /months?lang= 月份名称和可选年份
func (ctrl *ReleaseController) Months(c *gin.Context) {
	lang := release_models.LangES
	if v := c.Query("lang"); v != "" {
		parsed, err := release_models.ParseLang(v)
		if err != nil {
			releaseErrorResponse(c, err)
			return
		}
		lang = parsed
	}
	controller.SuccessResponse(c, "months", gin.H{
		"lang":   lang,
		"months": util_month.MonthNames(lang),
		"years":  util_month.AvailableYears(ctrl.now()),
	}, 12)
}
