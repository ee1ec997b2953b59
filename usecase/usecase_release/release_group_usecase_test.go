package usecase_release

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/newreleases/admin-console/domain/domain_release/release_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newGroupUsecase(repo *memoryRepo, storage *mockStorage) *ReleaseGroupUsecase {
	return NewReleaseGroupUsecase(repo, storage, 5*time.Second)
}

func pngUpload(name string) *release_models.MediaUpload {
	body := []byte("\x89PNG\r\n\x1a\n")
	return &release_models.MediaUpload{
		Name:        name,
		ContentType: "image/png",
		Size:        int64(len(body)),
		Body:        bytes.NewReader(body),
	}
}

func isStorageKey(key string) bool {
	return strings.HasPrefix(key, "releases/")
}

func TestGroupRowsPartition(t *testing.T) {
	es := newRow(release_models.LangES, "Hola")
	en := newRow(release_models.LangEN, "Hello")
	en.GroupID = groupIDPtr(es.ID)
	legacy := newRow(release_models.LangPT, "Olá")
	pt := newRow(release_models.LangPT, "Olá de novo")
	pt.GroupID = groupIDPtr(es.ID)

	groups, keys := GroupRows([]*release_models.ReleaseRow{es, legacy, en, pt})

	assert.Equal(t, []primitive.ObjectID{es.ID, legacy.ID}, keys)
	assert.Len(t, groups[es.ID], 3)
	assert.Len(t, groups[legacy.ID], 1)

	total := 0
	for _, rows := range groups {
		total += len(rows)
	}
	assert.Equal(t, 4, total)
}

func TestPrincipal(t *testing.T) {
	es := newRow(release_models.LangES, "Hola")
	en := newRow(release_models.LangEN, "Hello")
	pt := newRow(release_models.LangPT, "Olá")

	assert.Same(t, en, Principal([]*release_models.ReleaseRow{es, pt, en}))
	assert.Same(t, es, Principal([]*release_models.ReleaseRow{pt, es}))
	assert.Same(t, pt, Principal([]*release_models.ReleaseRow{pt}))
	assert.Nil(t, Principal(nil))
}

func TestSpanishTitle(t *testing.T) {
	es := newRow(release_models.LangES, "Hola")
	en := newRow(release_models.LangEN, "Hello")
	pt := newRow(release_models.LangPT, "Olá")

	assert.Equal(t, "Hola", SpanishTitle([]*release_models.ReleaseRow{en, es}))
	assert.Equal(t, "Hello", SpanishTitle([]*release_models.ReleaseRow{pt, en}))
	assert.Equal(t, "Olá", SpanishTitle([]*release_models.ReleaseRow{pt}))
}

func TestSortGroups(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(order *int, updated time.Time) *release_models.ReleaseGroup {
		row := newRow(release_models.LangEN, "x")
		row.OrderIndex = order
		row.UpdatedAt = updated
		return newGroup(row.ID, []*release_models.ReleaseRow{row})
	}
	noOrder := mk(nil, base.Add(time.Hour))
	second := mk(intPtr(2), base)
	firstOld := mk(intPtr(1), base)
	firstNew := mk(intPtr(1), base.Add(time.Minute))

	groups := []*release_models.ReleaseGroup{noOrder, second, firstOld, firstNew}
	SortGroups(groups)

	assert.Equal(t, []*release_models.ReleaseGroup{firstNew, firstOld, second, noOrder}, groups)
}

func TestBuildGroupLanguagesAndLastUpdated(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pt := newRow(release_models.LangPT, "Olá")
	pt.UpdatedAt = base.Add(time.Hour)
	en := newRow(release_models.LangEN, "Hello")
	en.UpdatedAt = base
	es := newRow(release_models.LangES, "Hola")
	es.UpdatedAt = base
	for _, r := range []*release_models.ReleaseRow{en, es} {
		r.GroupID = groupIDPtr(pt.ID)
	}

	groups := BuildGroups([]*release_models.ReleaseRow{pt, en, es})
	require.Len(t, groups, 1)
	assert.Equal(t, []release_models.Lang{release_models.LangES, release_models.LangEN, release_models.LangPT}, groups[0].Languages)
	assert.Equal(t, pt.UpdatedAt, groups[0].LastUpdated)
	assert.Same(t, en, groups[0].Principal)
}

func TestConsistencyReport(t *testing.T) {
	es := newRow(release_models.LangES, "Hola")
	en := newRow(release_models.LangEN, "Hello")
	en.Published = false
	group := newGroup(es.ID, []*release_models.ReleaseRow{es, en})

	report := ConsistencyReport(group)
	require.Len(t, report, 1)
	assert.Equal(t, "published", report[0].Field)
	assert.Equal(t, true, report[0].Values[es.ID.Hex()])
	assert.Equal(t, false, report[0].Values[en.ID.Hex()])

	en.Published = true
	assert.Empty(t, ConsistencyReport(group))
}

func TestCreateRelease(t *testing.T) {
	repo := newMemoryRepo()
	storage := &mockStorage{}
	storage.On("Upload", mock.Anything, mock.MatchedBy(isStorageKey), "image/png", mock.Anything, mock.Anything).Return(nil)
	uc := newGroupUsecase(repo, storage)

	row, err := uc.CreateRelease(context.Background(), release_models.CreateInput{
		Lang:        release_models.LangES,
		Title:       "Nuevo tablero",
		Bullets:     []string{"uno", " ", "dos"},
		MonthLabel:  "Mar 2025",
		MonthDate:   "2025-03-01",
		ReleaseType: release_models.ReleaseTypeBug,
		HasCost:     true,
		Media:       pngUpload("Tablero Nuevo.png"),
	})
	require.NoError(t, err)

	stored := repo.get(row.ID)
	require.NotNil(t, stored)
	require.NotNil(t, stored.GroupID)
	assert.Equal(t, row.ID, *stored.GroupID)
	assert.Equal(t, []string{"uno", "dos"}, stored.Bullets)
	assert.True(t, stored.Published)
	assert.False(t, stored.HasCost)
	assert.Equal(t, release_models.SizeMedium, stored.Size)
	assert.Equal(t, 0, *stored.OrderIndex)
	assert.Equal(t, release_models.MediaTypeImage, stored.MediaType)
	assert.True(t, strings.HasSuffix(stored.MediaPath, "-tablero-nuevo.png"))
	storage.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestCreateReleaseUploadFailure(t *testing.T) {
	repo := newMemoryRepo()
	storage := &mockStorage{}
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errInjected)
	uc := newGroupUsecase(repo, storage)

	_, err := uc.CreateRelease(context.Background(), release_models.CreateInput{
		Lang:  release_models.LangEN,
		Title: "New dashboard",
		Media: pngUpload("a.png"),
	})

	assert.ErrorIs(t, err, release_models.ErrUploadFailed)
	assert.ErrorIs(t, err, errInjected)
	assert.Zero(t, repo.count())
	storage.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestCreateReleaseInsertFailureRemovesUpload(t *testing.T) {
	repo := newMemoryRepo()
	repo.failInsert = errInjected
	storage := &mockStorage{}

	var uploaded string
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { uploaded = args.String(1) }).
		Return(nil)
	storage.On("Remove", mock.Anything, mock.Anything).Return(nil)
	uc := newGroupUsecase(repo, storage)

	_, err := uc.CreateRelease(context.Background(), release_models.CreateInput{
		Lang:  release_models.LangEN,
		Title: "New dashboard",
		Media: pngUpload("a.png"),
	})

	assert.ErrorIs(t, err, errInjected)
	storage.AssertCalled(t, "Remove", mock.Anything, []string{uploaded})
}

func TestCreateReleaseBackfillFailureKeepsRowAndMedia(t *testing.T) {
	repo := newMemoryRepo()
	repo.updateHook = func(_ primitive.ObjectID, set bson.M) error {
		if _, ok := set["group_id"]; ok {
			return errInjected
		}
		return nil
	}
	storage := &mockStorage{}
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	uc := newGroupUsecase(repo, storage)

	_, err := uc.CreateRelease(context.Background(), release_models.CreateInput{
		Lang:  release_models.LangEN,
		Title: "New dashboard",
		Media: pngUpload("a.png"),
	})

	assert.ErrorIs(t, err, release_models.ErrGroupBackfillFailed)
	assert.Equal(t, 1, repo.count())
	storage.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)

	// 未回填的行仍以自身ID成组
	groups, err := uc.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, groups[0].Principal.ID, groups[0].Key)
}

func TestCreateReleaseValidation(t *testing.T) {
	repo := newMemoryRepo()
	storage := &mockStorage{}
	uc := newGroupUsecase(repo, storage)

	_, err := uc.CreateRelease(context.Background(), release_models.CreateInput{Lang: release_models.LangEN, Media: pngUpload("a.png")})
	assert.ErrorIs(t, err, release_models.ErrTitleRequired)

	_, err = uc.CreateRelease(context.Background(), release_models.CreateInput{Lang: release_models.LangEN, Title: "x"})
	assert.ErrorIs(t, err, release_models.ErrMediaRequired)

	_, err = uc.CreateRelease(context.Background(), release_models.CreateInput{Lang: "FR", Title: "x", Media: pngUpload("a.png")})
	assert.ErrorIs(t, err, release_models.ErrValidation)

	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddTranslationCopiesSharedFields(t *testing.T) {
	repo := newMemoryRepo()
	es := newRow(release_models.LangES, "Hola")
	en := newRow(release_models.LangEN, "Hello")
	en.KBURL = "https://kb.test/article"
	en.Size = release_models.SizeLarge
	key := seedGroup(repo, es, en)
	uc := newGroupUsecase(repo, &mockStorage{})

	row, err := uc.AddTranslation(context.Background(), key, release_models.LangPT, release_models.PerLanguageFields{
		Title:      strPtr("Olá"),
		Bullets:    &[]string{"um", ""},
		MonthLabel: strPtr("Mar 2025"),
		MonthDate:  strPtr("2025-03-01"),
	})
	require.NoError(t, err)

	stored := repo.get(row.ID)
	assert.Equal(t, key, *stored.GroupID)
	assert.Equal(t, "Olá", stored.Title)
	assert.Equal(t, []string{"um"}, stored.Bullets)
	assert.Equal(t, release_models.SizeLarge, stored.Size)
	assert.Equal(t, "https://kb.test/article", stored.KBURL)
	assert.Equal(t, en.MediaPath, stored.MediaPath)

	group, err := uc.GetGroup(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, []release_models.Lang{release_models.LangES, release_models.LangEN, release_models.LangPT}, group.Languages)
}

func TestAddTranslationDuplicateLanguage(t *testing.T) {
	repo := newMemoryRepo()
	key := seedGroup(repo, newRow(release_models.LangES, "Hola"), newRow(release_models.LangEN, "Hello"))
	uc := newGroupUsecase(repo, &mockStorage{})

	_, err := uc.AddTranslation(context.Background(), key, release_models.LangEN, release_models.PerLanguageFields{
		Title: strPtr("Hello again"),
	})

	assert.ErrorIs(t, err, release_models.ErrDuplicateLanguage)
	assert.Equal(t, 2, repo.count())
	assert.Empty(t, repo.updates)
	assert.Zero(t, repo.inserts)
}

func TestAddTranslationBackfillsLegacyRow(t *testing.T) {
	repo := newMemoryRepo()
	legacy := newRow(release_models.LangES, "Hola")
	repo.seed(legacy)
	uc := newGroupUsecase(repo, &mockStorage{})

	_, err := uc.AddTranslation(context.Background(), legacy.ID, release_models.LangEN, release_models.PerLanguageFields{
		Title: strPtr("Hello"),
	})
	require.NoError(t, err)

	stored := repo.get(legacy.ID)
	require.NotNil(t, stored.GroupID)
	assert.Equal(t, legacy.ID, *stored.GroupID)

	group, err := uc.GetGroup(context.Background(), legacy.ID)
	require.NoError(t, err)
	assert.Len(t, group.Rows, 2)
}

func TestAddTranslationBackfillFailureSkipsInsert(t *testing.T) {
	repo := newMemoryRepo()
	legacy := newRow(release_models.LangES, "Hola")
	repo.seed(legacy)
	repo.updateHook = failOn(legacy.ID, "group_id")
	uc := newGroupUsecase(repo, &mockStorage{})

	_, err := uc.AddTranslation(context.Background(), legacy.ID, release_models.LangEN, release_models.PerLanguageFields{
		Title: strPtr("Hello"),
	})

	assert.ErrorIs(t, err, release_models.ErrGroupBackfillFailed)
	assert.Zero(t, repo.inserts)
	assert.Equal(t, 1, repo.count())
}

func TestAddTranslationBugGroupHasNoCost(t *testing.T) {
	repo := newMemoryRepo()
	en := newRow(release_models.LangEN, "Fix")
	en.ReleaseType = release_models.ReleaseTypeBug
	en.HasCost = true
	key := seedGroup(repo, en)
	uc := newGroupUsecase(repo, &mockStorage{})

	row, err := uc.AddTranslation(context.Background(), key, release_models.LangES, release_models.PerLanguageFields{
		Title: strPtr("Arreglo"),
	})
	require.NoError(t, err)
	assert.False(t, repo.get(row.ID).HasCost)
}

func TestRemoveTranslation(t *testing.T) {
	repo := newMemoryRepo()
	es := newRow(release_models.LangES, "Hola")
	en := newRow(release_models.LangEN, "Hello")
	key := seedGroup(repo, es, en)
	uc := newGroupUsecase(repo, &mockStorage{})

	require.NoError(t, uc.RemoveTranslation(context.Background(), key, release_models.LangEN))
	assert.Nil(t, repo.get(en.ID))

	err := uc.RemoveTranslation(context.Background(), key, release_models.LangES)
	assert.ErrorIs(t, err, release_models.ErrOnlyTranslation)
	assert.NotNil(t, repo.get(es.ID))

	err = uc.RemoveTranslation(context.Background(), key, release_models.LangPT)
	assert.ErrorIs(t, err, release_models.ErrLanguageNotInGroup)
}

func TestGetGroupErrors(t *testing.T) {
	uc := newGroupUsecase(newMemoryRepo(), &mockStorage{})

	_, err := uc.GetGroup(context.Background(), primitive.NilObjectID)
	assert.ErrorIs(t, err, release_models.ErrInvalidGroupKey)

	_, err = uc.GetGroup(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, release_models.ErrGroupNotFound)
}

func TestUpdateSharedAppliesToEveryRow(t *testing.T) {
	repo := newMemoryRepo()
	es := newRow(release_models.LangES, "Hola")
	en := newRow(release_models.LangEN, "Hello")
	key := seedGroup(repo, es, en)
	uc := newGroupUsecase(repo, &mockStorage{})

	size := release_models.SizeSmall
	require.NoError(t, uc.UpdateShared(context.Background(), key, release_models.SharedFields{
		Size:       &size,
		OrderIndex: intPtr(7),
	}))

	for _, id := range []primitive.ObjectID{es.ID, en.ID} {
		row := repo.get(id)
		assert.Equal(t, release_models.SizeSmall, row.Size)
		assert.Equal(t, 7, *row.OrderIndex)
	}
	assert.Empty(t, ConsistencyReport(mustGroup(t, uc, key)))
}

func TestUpdateSharedPartialWrite(t *testing.T) {
	repo := newMemoryRepo()
	r1 := newRow(release_models.LangES, "Hola")
	r2 := newRow(release_models.LangEN, "Hello")
	r3 := newRow(release_models.LangPT, "Olá")
	key := seedGroup(repo, r1, r2, r3)
	repo.updateHook = failOn(r2.ID, "published")
	uc := newGroupUsecase(repo, &mockStorage{})

	err := uc.UpdateShared(context.Background(), key, release_models.SharedFields{Published: boolPtr(false)})

	var partial *release_models.PartialWriteError
	require.True(t, errors.As(err, &partial))
	assert.True(t, partial.Inconsistent())
	assert.Equal(t, []primitive.ObjectID{r1.ID}, partial.Updated)
	assert.Equal(t, r2.ID, partial.Failed)
	assert.Equal(t, []primitive.ObjectID{r3.ID}, partial.Remaining)
	assert.ErrorIs(t, err, errInjected)

	assert.False(t, repo.get(r1.ID).Published)
	assert.True(t, repo.get(r2.ID).Published)
	assert.True(t, repo.get(r3.ID).Published)

	details := partial.Details()
	assert.Equal(t, r2.ID.Hex(), details["failed"])
}

func TestUpdateSharedBugClearsCost(t *testing.T) {
	repo := newMemoryRepo()
	en := newRow(release_models.LangEN, "Hello")
	en.HasCost = true
	key := seedGroup(repo, en)
	uc := newGroupUsecase(repo, &mockStorage{})

	bug := release_models.ReleaseTypeBug
	require.NoError(t, uc.UpdateShared(context.Background(), key, release_models.SharedFields{ReleaseType: &bug}))
	assert.False(t, repo.get(en.ID).HasCost)

	// 已是 bug 的分组，单独开启 has_cost 无效
	require.NoError(t, uc.UpdateShared(context.Background(), key, release_models.SharedFields{HasCost: boolPtr(true)}))
	assert.False(t, repo.get(en.ID).HasCost)
}

func TestUpdateSharedValidation(t *testing.T) {
	uc := newGroupUsecase(newMemoryRepo(), &mockStorage{})
	key := primitive.NewObjectID()

	assert.ErrorIs(t, uc.UpdateShared(context.Background(), key, release_models.SharedFields{}), release_models.ErrNothingToUpdate)

	size := release_models.Size("xl")
	assert.ErrorIs(t, uc.UpdateShared(context.Background(), key, release_models.SharedFields{Size: &size}), release_models.ErrInvalidSize)
}

func TestUpdatePerLanguageTouchesOneRow(t *testing.T) {
	repo := newMemoryRepo()
	es := newRow(release_models.LangES, "Hola")
	en := newRow(release_models.LangEN, "Hello")
	key := seedGroup(repo, es, en)
	uc := newGroupUsecase(repo, &mockStorage{})

	require.NoError(t, uc.UpdatePerLanguage(context.Background(), key, release_models.LangEN, release_models.PerLanguageFields{
		Title: strPtr("Hello world"),
	}))

	assert.Equal(t, "Hello world", repo.get(en.ID).Title)
	assert.Equal(t, "Hola", repo.get(es.ID).Title)

	err := uc.UpdatePerLanguage(context.Background(), key, release_models.LangEN, release_models.PerLanguageFields{
		Bullets: &[]string{"1", "2", "3", "4", "5", "6"},
	})
	assert.ErrorIs(t, err, release_models.ErrTooManyBullets)
}

func TestDeleteRowsRemovesSharedMediaOnce(t *testing.T) {
	repo := newMemoryRepo()
	a1 := newRow(release_models.LangES, "A")
	a2 := newRow(release_models.LangEN, "A")
	b1 := newRow(release_models.LangES, "B")
	for _, r := range []*release_models.ReleaseRow{a1, a2, b1} {
		r.MediaPath = "releases/shared.png"
	}
	seedGroup(repo, a1, a2)
	seedGroup(repo, b1)

	storage := &mockStorage{}
	storage.On("Remove", mock.Anything, []string{"releases/shared.png"}).Return(nil).Once()
	uc := newGroupUsecase(repo, storage)

	require.NoError(t, uc.DeleteRows(context.Background(), []primitive.ObjectID{a1.ID, a2.ID, b1.ID}))

	storage.AssertNumberOfCalls(t, "Remove", 1)
	storage.AssertExpectations(t)
	assert.Zero(t, repo.count())
	require.Len(t, repo.deletes, 1)
	assert.Len(t, repo.deletes[0], 3)
}

func TestDeleteRowsKeepsMediaStillInUse(t *testing.T) {
	repo := newMemoryRepo()
	a := newRow(release_models.LangES, "A")
	b := newRow(release_models.LangES, "B")
	a.MediaPath = "releases/shared.png"
	b.MediaPath = "releases/shared.png"
	remote := newRow(release_models.LangES, "C")
	remote.MediaPath = "https://old.cdn/legacy.png"
	seedGroup(repo, a)
	seedGroup(repo, b)
	seedGroup(repo, remote)

	storage := &mockStorage{}
	uc := newGroupUsecase(repo, storage)

	require.NoError(t, uc.DeleteRows(context.Background(), []primitive.ObjectID{a.ID, remote.ID}))

	storage.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	assert.Equal(t, 1, repo.count())
}

func TestDeleteGroupRemoveFailureStillDeletes(t *testing.T) {
	repo := newMemoryRepo()
	es := newRow(release_models.LangES, "Hola")
	en := newRow(release_models.LangEN, "Hello")
	key := seedGroup(repo, es, en)

	storage := &mockStorage{}
	storage.On("Remove", mock.Anything, []string{es.MediaPath}).Return(errInjected)
	uc := newGroupUsecase(repo, storage)

	require.NoError(t, uc.DeleteGroup(context.Background(), key))
	assert.Zero(t, repo.count())
}

func TestDeleteRowsLegacyImagePath(t *testing.T) {
	repo := newMemoryRepo()
	legacy := newRow(release_models.LangEN, "Old")
	legacy.MediaPath = ""
	legacy.MediaType = ""
	legacy.ImagePath = "releases/old.png"
	repo.seed(legacy)

	storage := &mockStorage{}
	storage.On("Remove", mock.Anything, []string{"releases/old.png"}).Return(nil)
	uc := newGroupUsecase(repo, storage)

	require.NoError(t, uc.DeleteRows(context.Background(), []primitive.ObjectID{legacy.ID}))
	storage.AssertExpectations(t)
}

func TestPreviewGroup(t *testing.T) {
	repo := newMemoryRepo()
	es := newRow(release_models.LangES, "Hola")
	en := newRow(release_models.LangEN, "Hello")
	en.MediaPath = "https://old.cdn/en.mp4"
	en.MediaType = release_models.MediaTypeVideo
	key := seedGroup(repo, es, en)
	uc := newGroupUsecase(repo, &mockStorage{})

	preview, err := uc.PreviewGroup(context.Background(), key)
	require.NoError(t, err)
	require.Len(t, preview.Media, 2)
	assert.Equal(t, release_models.LangES, preview.Media[0].Lang)
	assert.Equal(t, "https://cdn.test/"+es.MediaPath, preview.Media[0].URL)
	assert.Equal(t, "https://old.cdn/en.mp4", preview.Media[1].URL)
	assert.Equal(t, release_models.MediaTypeVideo, preview.Media[1].MediaType)
}

// 场景：ES 新建后补充 EN 翻译
func TestSpanishThenEnglishScenario(t *testing.T) {
	repo := newMemoryRepo()
	storage := &mockStorage{}
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	uc := newGroupUsecase(repo, storage)
	ctx := context.Background()

	es, err := uc.CreateRelease(ctx, release_models.CreateInput{
		Lang:       release_models.LangES,
		Title:      "Reportes",
		MonthLabel: "Mar 2025",
		MonthDate:  "2025-03-01",
		Media:      pngUpload("r.png"),
	})
	require.NoError(t, err)

	_, err = uc.AddTranslation(ctx, es.ID, release_models.LangEN, release_models.PerLanguageFields{
		Title: strPtr("Reports"),
	})
	require.NoError(t, err)

	groups, err := uc.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, es.ID, groups[0].Key)
	assert.Equal(t, release_models.LangEN, groups[0].Principal.Lang)

	enOnly := Filter(groups, release_models.NewTableState().WithLang("EN"))
	assert.Len(t, enOnly, 1)
	ptOnly := Filter(groups, release_models.NewTableState().WithLang("PT"))
	assert.Empty(t, ptOnly)
}

func mustGroup(t *testing.T, uc *ReleaseGroupUsecase, key primitive.ObjectID) *release_models.ReleaseGroup {
	t.Helper()
	group, err := uc.GetGroup(context.Background(), key)
	require.NoError(t, err)
	return group
}
