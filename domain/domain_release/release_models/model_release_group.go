package release_models

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReleaseGroup 同一发布的多语言版本集合，不持久化，每次读取时由行列表推导
type ReleaseGroup struct {
	Key         primitive.ObjectID `json:"group_key"`
	Principal   *ReleaseRow        `json:"principal"`
	Languages   []Lang             `json:"languages"`
	Rows        []*ReleaseRow      `json:"rows"`
	LastUpdated time.Time          `json:"last_updated"`
}

// Row 返回指定语言的行
func (g *ReleaseGroup) Row(lang Lang) *ReleaseRow {
	for _, r := range g.Rows {
		if r.Lang == lang {
			return r
		}
	}
	return nil
}

func (g *ReleaseGroup) HasLang(lang Lang) bool {
	return g.Row(lang) != nil
}

func (g *ReleaseGroup) RowIDs() []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(g.Rows))
	for _, r := range g.Rows {
		ids = append(ids, r.ID)
	}
	return ids
}

// SortLangs 去重并按 ES, EN, PT 排序
func SortLangs(langs []Lang) []Lang {
	seen := make(map[Lang]struct{}, len(langs))
	out := make([]Lang, 0, len(langs))
	for _, l := range langs {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].rank() < out[j].rank() })
	return out
}

// MediaPreview 预览时单行的媒体信息
type MediaPreview struct {
	Lang      Lang      `json:"lang"`
	URL       string    `json:"url"`
	MediaType MediaType `json:"media_type"`
}

// GroupPreview 预览弹窗所需数据
type GroupPreview struct {
	Group *ReleaseGroup  `json:"group"`
	Media []MediaPreview `json:"media"`
}
