package usecase_release

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/newreleases/admin-console/domain/domain_release/release_interface"
	"github.com/newreleases/admin-console/domain/domain_release/release_models"
	"github.com/newreleases/admin-console/util/util_log"
	"github.com/newreleases/admin-console/util/util_media"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReleaseGroupUsecase struct {
	repo    release_interface.ReleaseRowRepository
	storage release_interface.MediaStorage
	timeout time.Duration
}

func NewReleaseGroupUsecase(
	repo release_interface.ReleaseRowRepository,
	storage release_interface.MediaStorage,
	timeout time.Duration,
) *ReleaseGroupUsecase {
	return &ReleaseGroupUsecase{
		repo:    repo,
		storage: storage,
		timeout: timeout,
	}
}

var _ release_interface.ReleaseGroupUsecase = (*ReleaseGroupUsecase)(nil)

// ListGroups 每次从行列表重新计算并排序
func (uc *ReleaseGroupUsecase) ListGroups(ctx context.Context) ([]*release_models.ReleaseGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	rows, err := uc.repo.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	groups := BuildGroups(rows)
	SortGroups(groups)
	return groups, nil
}

func (uc *ReleaseGroupUsecase) GetGroup(ctx context.Context, key primitive.ObjectID) (*release_models.ReleaseGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	return uc.loadGroup(ctx, key)
}

func (uc *ReleaseGroupUsecase) loadGroup(ctx context.Context, key primitive.ObjectID) (*release_models.ReleaseGroup, error) {
	if key.IsZero() {
		return nil, release_models.ErrInvalidGroupKey
	}
	rows, err := uc.repo.GetByGroupKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", release_models.ErrGroupNotFound, key.Hex())
	}
	return newGroup(key, rows), nil
}

// PreviewGroup 附带每个语言版本的媒体地址
func (uc *ReleaseGroupUsecase) PreviewGroup(ctx context.Context, key primitive.ObjectID) (*release_models.GroupPreview, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	group, err := uc.loadGroup(ctx, key)
	if err != nil {
		return nil, err
	}

	preview := &release_models.GroupPreview{Group: group}
	for _, lang := range group.Languages {
		row := group.Row(lang)
		preview.Media = append(preview.Media, release_models.MediaPreview{
			Lang:      lang,
			URL:       util_media.PublicURL(uc.storage, util_media.ResolvePath(row)),
			MediaType: row.ResolvedMediaType(),
		})
	}
	return preview, nil
}

// CreateRelease 上传 -> 插入 -> 回填 group_id。
// 插入成功后不再回滚：回填失败直接返回错误，已上传的媒体保留。
func (uc *ReleaseGroupUsecase) CreateRelease(ctx context.Context, input release_models.CreateInput) (*release_models.ReleaseRow, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if strings.TrimSpace(input.Title) == "" {
		return nil, release_models.ErrTitleRequired
	}
	if input.Media == nil || input.Media.Body == nil {
		return nil, release_models.ErrMediaRequired
	}
	if !input.Lang.Valid() {
		return nil, release_models.ErrInvalidLang
	}

	mediaKey := util_media.StorageKey(input.Media.Name)
	mediaType := util_media.Classify(input.Media.ContentType)
	row := newReleaseRow(input, mediaKey, mediaType)

	saga := newReleaseSaga("create release").
		step(sagaStep{
			name: "upload media",
			action: func(ctx context.Context) error {
				return uc.upload(ctx, mediaKey, input.Media)
			},
			compensate: func(ctx context.Context) error {
				return uc.storage.Remove(ctx, []string{mediaKey})
			},
		}).
		step(sagaStep{
			name: "insert row",
			action: func(ctx context.Context) error {
				return uc.repo.Insert(ctx, row)
			},
			pivot: true,
		}).
		step(sagaStep{
			name: "backfill group id",
			action: func(ctx context.Context) error {
				if err := uc.repo.UpdateFields(ctx, row.ID, bson.M{"group_id": row.ID}); err != nil {
					return fmt.Errorf("%w: %w", release_models.ErrGroupBackfillFailed, err)
				}
				groupID := row.ID
				row.GroupID = &groupID
				return nil
			},
		})

	if err := saga.run(ctx); err != nil {
		return nil, err
	}
	return row, nil
}

func newReleaseRow(input release_models.CreateInput, mediaKey string, mediaType release_models.MediaType) *release_models.ReleaseRow {
	size := input.Size
	if !size.Valid() {
		size = release_models.SizeMedium
	}
	releaseType := input.ReleaseType
	if !releaseType.Valid() {
		releaseType = release_models.ReleaseTypeFeature
	}
	order := 0
	if input.OrderIndex != nil {
		order = *input.OrderIndex
	}

	row := &release_models.ReleaseRow{
		Lang:        input.Lang,
		Title:       input.Title,
		Bullets:     release_models.CleanBullets(input.Bullets),
		MonthLabel:  input.MonthLabel,
		MonthDate:   input.MonthDate,
		Size:        size,
		OrderIndex:  &order,
		KBURL:       input.KBURL,
		Published:   true,
		MediaPath:   mediaKey,
		MediaType:   mediaType,
		ReleaseType: releaseType,
		HasCost:     input.HasCost && releaseType != release_models.ReleaseTypeBug,
	}
	return row
}

func (uc *ReleaseGroupUsecase) upload(ctx context.Context, key string, media *release_models.MediaUpload) error {
	if err := uc.storage.Upload(ctx, key, media.ContentType, media.Body, media.Size); err != nil {
		return fmt.Errorf("%w: %w", release_models.ErrUploadFailed, err)
	}
	return nil
}

// AddTranslation 新增语言版本，共享字段从主行复制
func (uc *ReleaseGroupUsecase) AddTranslation(
	ctx context.Context,
	key primitive.ObjectID,
	lang release_models.Lang,
	fields release_models.PerLanguageFields,
) (*release_models.ReleaseRow, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if !lang.Valid() {
		return nil, release_models.ErrInvalidLang
	}
	if fields.Title == nil {
		return nil, release_models.ErrTitleRequired
	}
	if err := validatePerLanguage(fields); err != nil {
		return nil, err
	}

	group, err := uc.loadGroup(ctx, key)
	if err != nil {
		return nil, err
	}
	if group.HasLang(lang) {
		return nil, fmt.Errorf("%w: %s", release_models.ErrDuplicateLanguage, lang)
	}

	// 先把 group_id 写到所有尚未回填的行，任一失败则不插入新行
	for _, row := range group.Rows {
		if row.GroupID != nil && !row.GroupID.IsZero() {
			continue
		}
		if err := uc.repo.UpdateFields(ctx, row.ID, bson.M{"group_id": group.Key}); err != nil {
			return nil, fmt.Errorf("%w: %w", release_models.ErrGroupBackfillFailed, err)
		}
		groupID := group.Key
		row.GroupID = &groupID
	}

	principal := group.Principal
	shared := principal.SharedFields().Normalize(principal.ReleaseType)
	groupID := group.Key
	row := &release_models.ReleaseRow{
		GroupID: &groupID,
		Lang:    lang,
		Bullets: []string{},
	}
	row.ApplyShared(shared)
	row.ApplyPerLanguage(fields)
	row.Bullets = release_models.CleanBullets(row.Bullets)

	if err := uc.repo.Insert(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// RemoveTranslation 不允许删除唯一的语言版本，媒体由分组共享，保留
func (uc *ReleaseGroupUsecase) RemoveTranslation(ctx context.Context, key primitive.ObjectID, lang release_models.Lang) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	group, err := uc.loadGroup(ctx, key)
	if err != nil {
		return err
	}
	row := group.Row(lang)
	if row == nil {
		return fmt.Errorf("%w: %s", release_models.ErrLanguageNotInGroup, lang)
	}
	if len(group.Rows) == 1 {
		return release_models.ErrOnlyTranslation
	}

	_, err = uc.repo.DeleteByIDs(ctx, []primitive.ObjectID{row.ID})
	return err
}

// UpdateShared 逐行写入，第一处失败即停止并返回 PartialWriteError
func (uc *ReleaseGroupUsecase) UpdateShared(ctx context.Context, key primitive.ObjectID, fields release_models.SharedFields) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if fields.IsEmpty() {
		return release_models.ErrNothingToUpdate
	}
	if err := validateShared(fields); err != nil {
		return err
	}

	group, err := uc.loadGroup(ctx, key)
	if err != nil {
		return err
	}

	set := fields.Normalize(group.Principal.ReleaseType).SetDocument()
	ids := group.RowIDs()
	for i, id := range ids {
		if err := uc.repo.UpdateFields(ctx, id, set); err != nil {
			return &release_models.PartialWriteError{
				Op:        "update shared fields",
				Updated:   append([]primitive.ObjectID(nil), ids[:i]...),
				Failed:    id,
				Remaining: append([]primitive.ObjectID(nil), ids[i+1:]...),
				Err:       err,
			}
		}
	}
	return nil
}

// UpdatePerLanguage 只修改该语言的行
func (uc *ReleaseGroupUsecase) UpdatePerLanguage(
	ctx context.Context,
	key primitive.ObjectID,
	lang release_models.Lang,
	fields release_models.PerLanguageFields,
) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if fields.IsEmpty() {
		return release_models.ErrNothingToUpdate
	}
	if err := validatePerLanguage(fields); err != nil {
		return err
	}

	group, err := uc.loadGroup(ctx, key)
	if err != nil {
		return err
	}
	row := group.Row(lang)
	if row == nil {
		return fmt.Errorf("%w: %s", release_models.ErrLanguageNotInGroup, lang)
	}
	return uc.repo.UpdateFields(ctx, row.ID, fields.SetDocument())
}

func (uc *ReleaseGroupUsecase) DeleteGroup(ctx context.Context, key primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	group, err := uc.loadGroup(ctx, key)
	if err != nil {
		return err
	}
	return uc.deleteRows(ctx, group.RowIDs())
}

func (uc *ReleaseGroupUsecase) DeleteRows(ctx context.Context, ids []primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if len(ids) == 0 {
		return nil
	}
	return uc.deleteRows(ctx, ids)
}

// deleteRows 先删除不再被其他行引用的媒体（失败只记录），再用一次 in 过滤删除行
func (uc *ReleaseGroupUsecase) deleteRows(ctx context.Context, ids []primitive.ObjectID) error {
	targets := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		targets[id] = struct{}{}
	}

	rows, err := uc.repo.ListOrdered(ctx)
	if err != nil {
		util_log.Warn().Err(err).Msg("failed to list releases, media cleanup skipped")
	} else {
		var candidates []string
		for _, row := range rows {
			if _, ok := targets[row.ID]; ok {
				candidates = append(candidates, row.MediaKey())
			}
		}
		removeUnreferencedMedia(ctx, uc.storage, rows, candidates, targets)
	}

	_, err = uc.repo.DeleteByIDs(ctx, ids)
	return err
}

// removeUnreferencedMedia 去重后删除，排除外部地址和仍被其他行使用的路径
func removeUnreferencedMedia(
	ctx context.Context,
	storage release_interface.MediaStorage,
	rows []*release_models.ReleaseRow,
	candidates []string,
	excluded map[primitive.ObjectID]struct{},
) {
	inUse := make(map[string]struct{})
	for _, row := range rows {
		if _, ok := excluded[row.ID]; ok {
			continue
		}
		if key := row.MediaKey(); key != "" {
			inUse[key] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	keys := make([]string, 0, len(candidates))
	for _, key := range candidates {
		if key == "" || util_media.IsRemote(key) {
			continue
		}
		if _, ok := inUse[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return
	}

	if err := storage.Remove(ctx, keys); err != nil {
		util_log.Warn().Err(err).Strs("media", keys).Msg("failed to remove media")
	}
}

func validateShared(fields release_models.SharedFields) error {
	if fields.Size != nil && !fields.Size.Valid() {
		return release_models.ErrInvalidSize
	}
	if fields.ReleaseType != nil && !fields.ReleaseType.Valid() {
		return release_models.ErrInvalidType
	}
	if fields.MediaType != nil && !fields.MediaType.Valid() {
		return fmt.Errorf("%w: invalid media type", release_models.ErrValidation)
	}
	return nil
}

func validatePerLanguage(fields release_models.PerLanguageFields) error {
	if fields.Title != nil && strings.TrimSpace(*fields.Title) == "" {
		return release_models.ErrTitleRequired
	}
	if fields.Bullets != nil && len(release_models.CleanBullets(*fields.Bullets)) > release_models.MaxBullets {
		return release_models.ErrTooManyBullets
	}
	return nil
}
