package usecase_release

import (
	"sort"

	"github.com/newreleases/admin-console/domain/domain_release/release_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 分组由行列表推导，不单独存储

// GroupRows 按 group_id（为空时用 id）分组，keys 保持首次出现的顺序
func GroupRows(rows []*release_models.ReleaseRow) (map[primitive.ObjectID][]*release_models.ReleaseRow, []primitive.ObjectID) {
	groups := make(map[primitive.ObjectID][]*release_models.ReleaseRow)
	keys := make([]primitive.ObjectID, 0)
	for _, row := range rows {
		key := row.GroupKey()
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], row)
	}
	return groups, keys
}

// Principal EN 优先，其次 ES，否则第一行
func Principal(rows []*release_models.ReleaseRow) *release_models.ReleaseRow {
	if len(rows) == 0 {
		return nil
	}
	if row := firstWithLang(rows, release_models.LangEN); row != nil {
		return row
	}
	if row := firstWithLang(rows, release_models.LangES); row != nil {
		return row
	}
	return rows[0]
}

// SpanishTitle 表格标题列：ES 优先，其次 EN，否则第一行
func SpanishTitle(rows []*release_models.ReleaseRow) string {
	if len(rows) == 0 {
		return ""
	}
	if row := firstWithLang(rows, release_models.LangES); row != nil {
		return row.Title
	}
	if row := firstWithLang(rows, release_models.LangEN); row != nil {
		return row.Title
	}
	return rows[0].Title
}

func firstWithLang(rows []*release_models.ReleaseRow, lang release_models.Lang) *release_models.ReleaseRow {
	for _, row := range rows {
		if row.Lang == lang {
			return row
		}
	}
	return nil
}

// BuildGroups 按行列表的顺序生成分组
func BuildGroups(rows []*release_models.ReleaseRow) []*release_models.ReleaseGroup {
	byKey, keys := GroupRows(rows)
	groups := make([]*release_models.ReleaseGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, newGroup(key, byKey[key]))
	}
	return groups
}

func newGroup(key primitive.ObjectID, rows []*release_models.ReleaseRow) *release_models.ReleaseGroup {
	group := &release_models.ReleaseGroup{
		Key:       key,
		Principal: Principal(rows),
		Rows:      rows,
	}
	langs := make([]release_models.Lang, 0, len(rows))
	for _, row := range rows {
		langs = append(langs, row.Lang)
		if row.UpdatedAt.After(group.LastUpdated) {
			group.LastUpdated = row.UpdatedAt
		}
	}
	group.Languages = release_models.SortLangs(langs)
	return group
}

// SortGroups order_index 升序，空值排最后；相同时最近更新的在前
func SortGroups(groups []*release_models.ReleaseGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := orderOf(groups[i]), orderOf(groups[j])
		switch {
		case a != nil && b != nil && *a != *b:
			return *a < *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return groups[i].LastUpdated.After(groups[j].LastUpdated)
	})
}

func orderOf(g *release_models.ReleaseGroup) *int {
	if g.Principal == nil {
		return nil
	}
	return g.Principal.OrderIndex
}

// FieldMismatch 某个共享字段在分组内的不同取值，Values 以行ID为键
type FieldMismatch struct {
	Field  string                 `json:"field"`
	Values map[string]interface{} `json:"values"`
}

// ConsistencyReport 列出分组内取值不一致的共享字段，只读
func ConsistencyReport(group *release_models.ReleaseGroup) []FieldMismatch {
	if group == nil || len(group.Rows) < 2 {
		return nil
	}

	extract := []struct {
		field string
		value func(r *release_models.ReleaseRow) interface{}
	}{
		{"size", func(r *release_models.ReleaseRow) interface{} { return r.Size }},
		{"order_index", func(r *release_models.ReleaseRow) interface{} {
			if r.OrderIndex == nil {
				return nil
			}
			return *r.OrderIndex
		}},
		{"kb_url", func(r *release_models.ReleaseRow) interface{} { return r.KBURL }},
		{"published", func(r *release_models.ReleaseRow) interface{} { return r.Published }},
		{"media_path", func(r *release_models.ReleaseRow) interface{} { return r.MediaKey() }},
		{"media_type", func(r *release_models.ReleaseRow) interface{} { return r.ResolvedMediaType() }},
		{"release_type", func(r *release_models.ReleaseRow) interface{} { return r.ReleaseType }},
		{"has_cost", func(r *release_models.ReleaseRow) interface{} { return r.HasCost }},
	}

	var report []FieldMismatch
	for _, e := range extract {
		first := e.value(group.Rows[0])
		differs := false
		for _, row := range group.Rows[1:] {
			if e.value(row) != first {
				differs = true
				break
			}
		}
		if !differs {
			continue
		}
		values := make(map[string]interface{}, len(group.Rows))
		for _, row := range group.Rows {
			values[row.ID.Hex()] = e.value(row)
		}
		report = append(report, FieldMismatch{Field: e.field, Values: values})
	}
	return report
}
