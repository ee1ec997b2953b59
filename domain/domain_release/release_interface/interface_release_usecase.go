package release_interface

import (
	"context"

	"github.com/newreleases/admin-console/domain/domain_release/release_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReleaseGroupUsecase interface {
	ListGroups(ctx context.Context) ([]*release_models.ReleaseGroup, error)
	GetGroup(ctx context.Context, key primitive.ObjectID) (*release_models.ReleaseGroup, error)
	PreviewGroup(ctx context.Context, key primitive.ObjectID) (*release_models.GroupPreview, error)

	CreateRelease(ctx context.Context, input release_models.CreateInput) (*release_models.ReleaseRow, error)
	AddTranslation(ctx context.Context, key primitive.ObjectID, lang release_models.Lang, fields release_models.PerLanguageFields) (*release_models.ReleaseRow, error)
	RemoveTranslation(ctx context.Context, key primitive.ObjectID, lang release_models.Lang) error
	UpdateShared(ctx context.Context, key primitive.ObjectID, fields release_models.SharedFields) error
	UpdatePerLanguage(ctx context.Context, key primitive.ObjectID, lang release_models.Lang, fields release_models.PerLanguageFields) error
	DeleteGroup(ctx context.Context, key primitive.ObjectID) error
	DeleteRows(ctx context.Context, ids []primitive.ObjectID) error
}

type ReleaseTableUsecase interface {
	View(ctx context.Context, state release_models.TableState) (*release_models.TableView, error)
	BulkDelete(ctx context.Context, state release_models.TableState) (release_models.TableState, error)
	SetStatus(ctx context.Context, key primitive.ObjectID, published bool) error
}

type ReleaseFormUsecase interface {
	SubmitCreate(ctx context.Context, form release_models.CreateForm) (*release_models.ReleaseRow, error)
	LoadEdit(ctx context.Context, key primitive.ObjectID, lang release_models.Lang) (*release_models.EditForm, error)
	SubmitEdit(ctx context.Context, key primitive.ObjectID, form release_models.EditForm) error
	SubmitTranslation(ctx context.Context, key primitive.ObjectID, form release_models.TranslationForm) (*release_models.ReleaseRow, error)
}
