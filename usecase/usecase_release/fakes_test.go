package usecase_release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/newreleases/admin-console/domain/domain_release/release_models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errInjected = errors.New("injected failure")

// memoryRepo 内存版发布行存储，updateHook 返回错误时该次写入失败
type memoryRepo struct {
	mu   sync.Mutex
	rows []*release_models.ReleaseRow
	now  time.Time

	updateHook func(id primitive.ObjectID, set bson.M) error
	failInsert error
	failList   error

	updates []primitive.ObjectID
	inserts int
	deletes [][]primitive.ObjectID
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

// seed 直接写入，不经过唯一性检查
func (r *memoryRepo) seed(rows ...*release_models.ReleaseRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		if row.ID.IsZero() {
			row.ID = primitive.NewObjectID()
		}
		if row.CreatedAt.IsZero() {
			r.now = r.now.Add(time.Second)
			row.CreatedAt = r.now
			row.UpdatedAt = r.now
		}
		r.rows = append(r.rows, cloneRow(row))
	}
}

func (r *memoryRepo) get(id primitive.ObjectID) *release_models.ReleaseRow {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return cloneRow(row)
		}
	}
	return nil
}

func (r *memoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *memoryRepo) ListOrdered(_ context.Context) ([]*release_models.ReleaseRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList != nil {
		return nil, r.failList
	}
	out := make([]*release_models.ReleaseRow, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, cloneRow(row))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].OrderIndex, out[j].OrderIndex
		if a != nil && b != nil && *a != *b {
			return *a < *b
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*release_models.ReleaseRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*release_models.ReleaseRow
	for _, row := range r.rows {
		for _, id := range ids {
			if row.ID == id {
				out = append(out, cloneRow(row))
			}
		}
	}
	return out, nil
}

func (r *memoryRepo) GetByGroupKey(_ context.Context, key primitive.ObjectID) ([]*release_models.ReleaseRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*release_models.ReleaseRow
	for _, row := range r.rows {
		if (row.GroupID != nil && *row.GroupID == key) || (row.GroupID == nil && row.ID == key) {
			out = append(out, cloneRow(row))
		}
	}
	return out, nil
}

func (r *memoryRepo) Insert(_ context.Context, row *release_models.ReleaseRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failInsert != nil {
		return r.failInsert
	}
	if row.GroupID != nil {
		for _, existing := range r.rows {
			if existing.GroupID != nil && *existing.GroupID == *row.GroupID && existing.Lang == row.Lang {
				return fmt.Errorf("%w: %s", release_models.ErrDuplicateLanguage, row.Lang)
			}
		}
	}
	r.now = r.now.Add(time.Second)
	row.ID = primitive.NewObjectID()
	row.CreatedAt = r.now
	row.UpdatedAt = r.now
	r.rows = append(r.rows, cloneRow(row))
	r.inserts++
	return nil
}

// UpdateFields 通过 bson 往返应用 $set
func (r *memoryRepo) UpdateFields(_ context.Context, id primitive.ObjectID, set bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, id)
	if r.updateHook != nil {
		if err := r.updateHook(id, set); err != nil {
			return err
		}
	}
	for i, row := range r.rows {
		if row.ID != id {
			continue
		}
		raw, err := bson.Marshal(row)
		if err != nil {
			return err
		}
		doc := bson.M{}
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return err
		}
		for k, v := range set {
			doc[k] = v
		}
		r.now = r.now.Add(time.Second)
		doc["updated_at"] = r.now
		raw, err = bson.Marshal(doc)
		if err != nil {
			return err
		}
		updated := &release_models.ReleaseRow{}
		if err := bson.Unmarshal(raw, updated); err != nil {
			return err
		}
		r.rows[i] = updated
		return nil
	}
	return fmt.Errorf("release %s not found", id.Hex())
}

func (r *memoryRepo) DeleteByIDs(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes = append(r.deletes, append([]primitive.ObjectID(nil), ids...))
	remove := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		remove[id] = struct{}{}
	}
	kept := r.rows[:0]
	var deleted int64
	for _, row := range r.rows {
		if _, ok := remove[row.ID]; ok {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return deleted, nil
}

// failOn 指定行且 $set 含有 field 时失败
func failOn(id primitive.ObjectID, field string) func(primitive.ObjectID, bson.M) error {
	return func(target primitive.ObjectID, set bson.M) error {
		if _, ok := set[field]; ok && target == id {
			return errInjected
		}
		return nil
	}
}

func cloneRow(row *release_models.ReleaseRow) *release_models.ReleaseRow {
	c := *row
	if row.GroupID != nil {
		g := *row.GroupID
		c.GroupID = &g
	}
	if row.OrderIndex != nil {
		o := *row.OrderIndex
		c.OrderIndex = &o
	}
	c.Bullets = append([]string(nil), row.Bullets...)
	return &c
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	args := m.Called(ctx, key, contentType, body, size)
	return args.Error(0)
}

func (m *mockStorage) Remove(ctx context.Context, keys []string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *mockStorage) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

// 测试数据构造

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func groupIDPtr(id primitive.ObjectID) *primitive.ObjectID { return &id }

func newRow(lang release_models.Lang, title string) *release_models.ReleaseRow {
	return &release_models.ReleaseRow{
		ID:          primitive.NewObjectID(),
		Lang:        lang,
		Title:       title,
		Bullets:     []string{},
		MonthLabel:  "Mar 2025",
		MonthDate:   "2025-03-01",
		Size:        release_models.SizeMedium,
		OrderIndex:  intPtr(1),
		Published:   true,
		MediaPath:   "releases/a-shared.png",
		MediaType:   release_models.MediaTypeImage,
		ReleaseType: release_models.ReleaseTypeFeature,
	}
}

// seedGroup 第一行的ID作为分组键，所有行都已回填 group_id
func seedGroup(repo *memoryRepo, rows ...*release_models.ReleaseRow) primitive.ObjectID {
	key := rows[0].ID
	for _, row := range rows {
		row.GroupID = groupIDPtr(key)
	}
	repo.seed(rows...)
	return key
}
