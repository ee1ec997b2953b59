package route_release

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newreleases/admin-console/api/controller/controller_release"
	"github.com/newreleases/admin-console/domain"
	"github.com/newreleases/admin-console/domain/domain_release/release_interface"
	"github.com/newreleases/admin-console/mongo"
	"github.com/newreleases/admin-console/repository/repository_release"
	"github.com/newreleases/admin-console/usecase/usecase_release"
)

func NewReleaseRouter(
	timeout time.Duration,
	db mongo.Database,
	group *gin.RouterGroup,
	storage release_interface.MediaStorage,
	lock release_interface.GroupLock,
) {
	repo := repository_release.NewReleaseRowRepository(db, domain.CollectionReleaseRows)

	groups := usecase_release.NewReleaseGroupUsecase(repo, storage, timeout)
	table := usecase_release.NewReleaseTableUsecase(groups, lock, timeout)
	forms := usecase_release.NewReleaseFormUsecase(groups, repo, storage, timeout)
	ctrl := controller_release.NewReleaseController(groups, table, forms)

	releaseGroup := group.Group("/releases")
	{
		releaseGroup.GET("/groups", ctrl.ListGroups)
		releaseGroup.GET("/table", ctrl.Table)
		releaseGroup.GET("/months", ctrl.Months)
		releaseGroup.GET("/groups/:key", ctrl.GetGroup)
		releaseGroup.GET("/groups/:key/edit", ctrl.LoadEdit)

		releaseGroup.POST("", ctrl.CreateRelease)
		releaseGroup.PUT("/groups/:key", ctrl.UpdateRelease)
		releaseGroup.PATCH("/groups/:key/status", ctrl.SetStatus)
		releaseGroup.POST("/groups/:key/translations", ctrl.AddTranslation)
		releaseGroup.DELETE("/groups/:key/translations/:lang", ctrl.RemoveTranslation)
		releaseGroup.DELETE("/groups/:key", ctrl.DeleteGroup)
		releaseGroup.POST("/bulk-delete", ctrl.BulkDelete)
	}
}
