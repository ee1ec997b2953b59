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
	"github.com/newreleases/admin-console/util/util_month"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReleaseFormUsecase 表单校验在调用任何外部依赖之前完成
type ReleaseFormUsecase struct {
	groups  release_interface.ReleaseGroupUsecase
	repo    release_interface.ReleaseRowRepository
	storage release_interface.MediaStorage
	timeout time.Duration
}

func NewReleaseFormUsecase(
	groups release_interface.ReleaseGroupUsecase,
	repo release_interface.ReleaseRowRepository,
	storage release_interface.MediaStorage,
	timeout time.Duration,
) *ReleaseFormUsecase {
	return &ReleaseFormUsecase{
		groups:  groups,
		repo:    repo,
		storage: storage,
		timeout: timeout,
	}
}

var _ release_interface.ReleaseFormUsecase = (*ReleaseFormUsecase)(nil)

func (uc *ReleaseFormUsecase) SubmitCreate(ctx context.Context, form release_models.CreateForm) (*release_models.ReleaseRow, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	lang, err := release_models.ParseLang(form.Lang)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(form.Title) == "" {
		return nil, release_models.ErrTitleRequired
	}
	if form.Media == nil {
		return nil, release_models.ErrMediaRequired
	}
	if err := validateMedia(form.Media); err != nil {
		return nil, err
	}
	monthDate, monthLabel, err := encodeMonth(lang, form.Year, form.Month)
	if err != nil {
		return nil, err
	}
	bullets := release_models.CleanBullets(form.Bullets)
	if len(bullets) > release_models.MaxBullets {
		return nil, release_models.ErrTooManyBullets
	}
	if form.Size != "" && !form.Size.Valid() {
		return nil, release_models.ErrInvalidSize
	}
	if form.ReleaseType != "" && !form.ReleaseType.Valid() {
		return nil, release_models.ErrInvalidType
	}

	return uc.groups.CreateRelease(ctx, release_models.CreateInput{
		Lang:        lang,
		Title:       form.Title,
		Bullets:     bullets,
		MonthLabel:  monthLabel,
		MonthDate:   monthDate,
		Size:        form.Size,
		OrderIndex:  form.OrderIndex,
		KBURL:       strings.TrimSpace(form.KBURL),
		ReleaseType: form.ReleaseType,
		HasCost:     form.HasCost,
		Media:       form.Media,
	})
}

// LoadEdit 年月取自 month_date，旧数据回退到解析 month_label
func (uc *ReleaseFormUsecase) LoadEdit(ctx context.Context, key primitive.ObjectID, lang release_models.Lang) (*release_models.EditForm, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	group, err := uc.groups.GetGroup(ctx, key)
	if err != nil {
		return nil, err
	}
	row := group.Row(lang)
	if row == nil {
		return nil, fmt.Errorf("%w: %s", release_models.ErrLanguageNotInGroup, lang)
	}

	published, hasCost := row.Published, row.HasCost
	form := &release_models.EditForm{
		Lang:        row.Lang,
		Title:       row.Title,
		Bullets:     append([]string{}, row.Bullets...),
		Size:        row.Size,
		OrderIndex:  row.OrderIndex,
		KBURL:       row.KBURL,
		Published:   &published,
		ReleaseType: row.ReleaseType,
		HasCost:     &hasCost,
		MediaPath:   row.MediaKey(),
		MediaType:   row.ResolvedMediaType(),
	}
	if year, month, ok := util_month.Resolve(row.MonthDate, row.MonthLabel); ok {
		form.Year, form.Month = year, month
	}
	return form, nil
}

// SubmitEdit 上传新媒体 -> 更新语言字段 -> 同步共享字段。
// 任一写入失败时删除新上传的媒体；成功后删除不再被引用的旧媒体。
func (uc *ReleaseFormUsecase) SubmitEdit(ctx context.Context, key primitive.ObjectID, form release_models.EditForm) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if !form.Lang.Valid() {
		return release_models.ErrInvalidLang
	}
	if strings.TrimSpace(form.Title) == "" {
		return release_models.ErrTitleRequired
	}
	monthDate, monthLabel, err := encodeMonth(form.Lang, form.Year, form.Month)
	if err != nil {
		return err
	}
	bullets := release_models.CleanBullets(form.Bullets)
	if len(bullets) > release_models.MaxBullets {
		return release_models.ErrTooManyBullets
	}
	if !form.Size.Valid() {
		return release_models.ErrInvalidSize
	}
	if !form.ReleaseType.Valid() {
		return release_models.ErrInvalidType
	}
	if form.Media != nil {
		if err := validateMedia(form.Media); err != nil {
			return err
		}
	}

	group, err := uc.groups.GetGroup(ctx, key)
	if err != nil {
		return err
	}
	row := group.Row(form.Lang)
	if row == nil {
		return fmt.Errorf("%w: %s", release_models.ErrLanguageNotInGroup, form.Lang)
	}
	oldMedia := group.Principal.MediaKey()

	title := form.Title
	kb := strings.TrimSpace(form.KBURL)
	perLanguage := release_models.PerLanguageFields{
		Title:      &title,
		Bullets:    &bullets,
		MonthLabel: &monthLabel,
		MonthDate:  &monthDate,
	}
	shared := release_models.SharedFields{
		Size:        &form.Size,
		OrderIndex:  form.OrderIndex,
		KBURL:       &kb,
		Published:   form.Published,
		ReleaseType: &form.ReleaseType,
		HasCost:     form.HasCost,
	}

	saga := newReleaseSaga("edit release")
	newMedia := ""
	if form.Media != nil {
		newMedia = util_media.StorageKey(form.Media.Name)
		mediaType := util_media.Classify(form.Media.ContentType)
		shared.MediaPath = &newMedia
		shared.MediaType = &mediaType

		saga.step(sagaStep{
			name: "upload media",
			action: func(ctx context.Context) error {
				if err := uc.storage.Upload(ctx, newMedia, form.Media.ContentType, form.Media.Body, form.Media.Size); err != nil {
					return fmt.Errorf("%w: %w", release_models.ErrUploadFailed, err)
				}
				return nil
			},
			compensate: func(ctx context.Context) error {
				return uc.storage.Remove(ctx, []string{newMedia})
			},
		})
	}
	saga.
		step(sagaStep{
			name: "update language fields",
			action: func(ctx context.Context) error {
				return uc.groups.UpdatePerLanguage(ctx, key, form.Lang, perLanguage)
			},
		}).
		step(sagaStep{
			name: "update shared fields",
			action: func(ctx context.Context) error {
				return uc.groups.UpdateShared(ctx, key, shared)
			},
		})

	if err := saga.run(ctx); err != nil {
		return err
	}

	if newMedia != "" && oldMedia != "" && oldMedia != newMedia {
		uc.removeOldMedia(ctx, oldMedia)
	}
	return nil
}

func (uc *ReleaseFormUsecase) removeOldMedia(ctx context.Context, path string) {
	rows, err := uc.repo.ListOrdered(ctx)
	if err != nil {
		util_log.Warn().Err(err).Str("media", path).Msg("failed to list releases, old media kept")
		return
	}
	removeUnreferencedMedia(ctx, uc.storage, rows, []string{path}, nil)
}

func (uc *ReleaseFormUsecase) SubmitTranslation(ctx context.Context, key primitive.ObjectID, form release_models.TranslationForm) (*release_models.ReleaseRow, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	lang, err := release_models.ParseLang(form.Lang)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(form.Title) == "" {
		return nil, release_models.ErrTitleRequired
	}
	monthDate, monthLabel, err := encodeMonth(lang, form.Year, form.Month)
	if err != nil {
		return nil, err
	}
	bullets := release_models.CleanBullets(form.Bullets)
	if len(bullets) > release_models.MaxBullets {
		return nil, release_models.ErrTooManyBullets
	}

	title := form.Title
	return uc.groups.AddTranslation(ctx, key, lang, release_models.PerLanguageFields{
		Title:      &title,
		Bullets:    &bullets,
		MonthLabel: &monthLabel,
		MonthDate:  &monthDate,
	})
}

// encodeMonth 月份和年份都必须选择
func encodeMonth(lang release_models.Lang, year, month int) (string, string, error) {
	if year == 0 || month == 0 {
		return "", "", release_models.ErrMonthRequired
	}
	monthDate, err := util_month.Encode(year, month)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", release_models.ErrValidation, err)
	}
	monthLabel, err := util_month.Label(lang, year, month)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", release_models.ErrValidation, err)
	}
	return monthDate, monthLabel, nil
}

func validateMedia(media *release_models.MediaUpload) error {
	if media.Body == nil {
		return release_models.ErrMediaRequired
	}
	_, err := util_media.Validate(util_media.Candidate{
		Name:        media.Name,
		ContentType: media.ContentType,
		Size:        media.Size,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", release_models.ErrValidation, err)
	}
	return nil
}
