package release_models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FilterAll       = "ALL"
	StatusPublished = "published"
	StatusPaused    = "paused"
)

// TableState 管理表格的视图状态，可序列化，修改方法返回新值
type TableState struct {
	Search   string               `json:"search"`
	Lang     string               `json:"lang"`
	Status   string               `json:"status"`
	Selected []primitive.ObjectID `json:"selected"`
}

func NewTableState() TableState {
	return TableState{Lang: FilterAll, Status: FilterAll}
}

func (s TableState) WithSearch(search string) TableState {
	s.Search = search
	return s
}

// WithLang 非法值按 ALL 处理
func (s TableState) WithLang(lang string) TableState {
	v := strings.ToUpper(strings.TrimSpace(lang))
	if v == "" || v == FilterAll {
		s.Lang = FilterAll
		return s
	}
	parsed, err := ParseLang(v)
	if err != nil {
		s.Lang = FilterAll
		return s
	}
	s.Lang = string(parsed)
	return s
}

func (s TableState) WithStatus(status string) TableState {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case StatusPublished:
		s.Status = StatusPublished
	case StatusPaused:
		s.Status = StatusPaused
	default:
		s.Status = FilterAll
	}
	return s
}

func (s TableState) WithSelected(ids []primitive.ObjectID) TableState {
	s.Selected = append([]primitive.ObjectID(nil), ids...)
	return s
}

func (s TableState) ClearSelection() TableState {
	s.Selected = nil
	return s
}

func (s TableState) IsSelected(id primitive.ObjectID) bool {
	for _, v := range s.Selected {
		if v == id {
			return true
		}
	}
	return false
}

// TableRow 表格中一个分组的展示列
type TableRow struct {
	GroupKey    primitive.ObjectID   `json:"group_key"`
	RowIDs      []primitive.ObjectID `json:"row_ids"`
	Order       *int                 `json:"order"`
	Month       string               `json:"month"`
	Title       string               `json:"title"`
	Languages   []string             `json:"languages"`
	Status      string               `json:"status"`
	ReleaseType ReleaseType          `json:"release_type"`
	HasCost     bool                 `json:"has_cost"`
	LastUpdated time.Time            `json:"last_updated"`
	Selected    bool                 `json:"selected"`
}

type TableView struct {
	State       TableState `json:"state"`
	Rows        []TableRow `json:"rows"`
	Total       int        `json:"total"`
	AllSelected bool       `json:"all_selected"`
}
