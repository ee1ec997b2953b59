package usecase_release

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/newreleases/admin-console/domain/domain_release/release_interface"
	"github.com/newreleases/admin-console/domain/domain_release/release_models"
	"github.com/newreleases/admin-console/util/util_log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/cases"
)

// 表格标题列最多显示的字符数
const titleColumnRunes = 60

type ReleaseTableUsecase struct {
	groups  release_interface.ReleaseGroupUsecase
	lock    release_interface.GroupLock
	timeout time.Duration
}

func NewReleaseTableUsecase(
	groups release_interface.ReleaseGroupUsecase,
	lock release_interface.GroupLock,
	timeout time.Duration,
) *ReleaseTableUsecase {
	return &ReleaseTableUsecase{
		groups:  groups,
		lock:    lock,
		timeout: timeout,
	}
}

var _ release_interface.ReleaseTableUsecase = (*ReleaseTableUsecase)(nil)

func (uc *ReleaseTableUsecase) View(ctx context.Context, state release_models.TableState) (*release_models.TableView, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	groups, err := uc.groups.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	filtered := Filter(groups, state)
	return &release_models.TableView{
		State:       state,
		Rows:        Rows(filtered, state),
		Total:       len(groups),
		AllSelected: allSelected(filtered, state),
	}, nil
}

// BulkDelete 删除所选行，成功后清空选择
func (uc *ReleaseTableUsecase) BulkDelete(ctx context.Context, state release_models.TableState) (release_models.TableState, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if len(state.Selected) == 0 {
		return state, fmt.Errorf("%w: no releases selected", release_models.ErrValidation)
	}
	if err := uc.groups.DeleteRows(ctx, state.Selected); err != nil {
		return state, err
	}
	return state.ClearSelection(), nil
}

// SetStatus 同一分组同时只允许一个状态切换
func (uc *ReleaseTableUsecase) SetStatus(ctx context.Context, key primitive.ObjectID, published bool) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	lockKey := key.Hex()
	ok, err := uc.lock.TryLock(ctx, lockKey)
	if err != nil {
		return err
	}
	if !ok {
		return release_models.ErrStatusUpdateInProgress
	}
	defer func() {
		if err := uc.lock.Unlock(context.WithoutCancel(ctx), lockKey); err != nil {
			util_log.Warn().Err(err).Str("group", lockKey).Msg("failed to release status lock")
		}
	}()

	return uc.groups.UpdateShared(ctx, key, release_models.SharedFields{Published: &published})
}

// Filter 搜索、语言、状态三个条件同时满足
func Filter(groups []*release_models.ReleaseGroup, state release_models.TableState) []*release_models.ReleaseGroup {
	fold := cases.Fold()
	search := fold.String(strings.TrimSpace(state.Search))

	out := make([]*release_models.ReleaseGroup, 0, len(groups))
	for _, g := range groups {
		if search != "" && !matchesSearch(g, search, fold) {
			continue
		}
		if state.Lang != "" && state.Lang != release_models.FilterAll && !g.HasLang(release_models.Lang(state.Lang)) {
			continue
		}
		if !matchesStatus(g, state.Status) {
			continue
		}
		out = append(out, g)
	}
	return out
}

func matchesSearch(g *release_models.ReleaseGroup, search string, fold cases.Caser) bool {
	for _, row := range g.Rows {
		if strings.Contains(fold.String(row.Title), search) || strings.Contains(fold.String(row.MonthLabel), search) {
			return true
		}
	}
	return false
}

func matchesStatus(g *release_models.ReleaseGroup, status string) bool {
	switch status {
	case release_models.StatusPublished:
		return g.Principal != nil && g.Principal.Published
	case release_models.StatusPaused:
		return g.Principal != nil && !g.Principal.Published
	}
	return true
}

// IsGroupSelected 分组的所有行都已选中
func IsGroupSelected(state release_models.TableState, g *release_models.ReleaseGroup) bool {
	if len(g.Rows) == 0 {
		return false
	}
	for _, row := range g.Rows {
		if !state.IsSelected(row.ID) {
			return false
		}
	}
	return true
}

// ToggleGroup 选中或取消分组的全部行
func ToggleGroup(state release_models.TableState, groups []*release_models.ReleaseGroup, key primitive.ObjectID) release_models.TableState {
	var target *release_models.ReleaseGroup
	for _, g := range groups {
		if g.Key == key {
			target = g
			break
		}
	}
	if target == nil {
		return state
	}

	if IsGroupSelected(state, target) {
		remove := make(map[primitive.ObjectID]struct{}, len(target.Rows))
		for _, id := range target.RowIDs() {
			remove[id] = struct{}{}
		}
		kept := make([]primitive.ObjectID, 0, len(state.Selected))
		for _, id := range state.Selected {
			if _, ok := remove[id]; !ok {
				kept = append(kept, id)
			}
		}
		return state.WithSelected(kept)
	}

	selected := append([]primitive.ObjectID(nil), state.Selected...)
	for _, id := range target.RowIDs() {
		if !state.IsSelected(id) {
			selected = append(selected, id)
		}
	}
	return state.WithSelected(selected)
}

// ToggleAll 过滤结果已全部选中时清空选择，否则选中过滤结果的全部行
func ToggleAll(state release_models.TableState, filtered []*release_models.ReleaseGroup) release_models.TableState {
	if allSelected(filtered, state) {
		return state.ClearSelection()
	}
	ids := make([]primitive.ObjectID, 0)
	for _, g := range filtered {
		ids = append(ids, g.RowIDs()...)
	}
	return state.WithSelected(ids)
}

func allSelected(filtered []*release_models.ReleaseGroup, state release_models.TableState) bool {
	if len(filtered) == 0 {
		return false
	}
	for _, g := range filtered {
		if !IsGroupSelected(state, g) {
			return false
		}
	}
	return true
}

// Rows 生成表格展示列
func Rows(groups []*release_models.ReleaseGroup, state release_models.TableState) []release_models.TableRow {
	out := make([]release_models.TableRow, 0, len(groups))
	for _, g := range groups {
		p := g.Principal
		if p == nil {
			continue
		}
		langs := make([]string, 0, len(g.Languages))
		for _, l := range g.Languages {
			langs = append(langs, l.Badge())
		}
		status := release_models.StatusPaused
		if p.Published {
			status = release_models.StatusPublished
		}
		out = append(out, release_models.TableRow{
			GroupKey:    g.Key,
			RowIDs:      g.RowIDs(),
			Order:       p.OrderIndex,
			Month:       p.MonthLabel,
			Title:       truncateRunes(SpanishTitle(g.Rows), titleColumnRunes),
			Languages:   langs,
			Status:      status,
			ReleaseType: p.ReleaseType,
			HasCost:     p.HasCost,
			LastUpdated: g.LastUpdated,
			Selected:    IsGroupSelected(state, g),
		})
	}
	return out
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
