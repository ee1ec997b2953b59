package release_models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lang 发布卡片的语言
type Lang string

const (
	LangES Lang = "ES"
	LangEN Lang = "EN"
	LangPT Lang = "PT"
)

// Langs 按表格展示顺序排列
var Langs = []Lang{LangES, LangEN, LangPT}

// ParseLang 兼容表单中的 "PT/BR" 写法
func ParseLang(s string) (Lang, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "PT/BR" || v == "PT-BR" {
		v = string(LangPT)
	}
	lang := Lang(v)
	if !lang.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLang, s)
	}
	return lang, nil
}

func (l Lang) Valid() bool {
	return l == LangES || l == LangEN || l == LangPT
}

// Badge 表格语言徽标
func (l Lang) Badge() string {
	if l == LangPT {
		return "PT/BR"
	}
	return string(l)
}

// rank 用于 ES, EN, PT 排序
func (l Lang) rank() int {
	for i, v := range Langs {
		if v == l {
			return i
		}
	}
	return len(Langs)
}

type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

func (s Size) Valid() bool {
	return s == SizeSmall || s == SizeMedium || s == SizeLarge
}

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

type ReleaseType string

const (
	ReleaseTypeFeature ReleaseType = "feature"
	ReleaseTypeBug     ReleaseType = "bug"
)

func (t ReleaseType) Valid() bool {
	return t == ReleaseTypeFeature || t == ReleaseTypeBug
}

// ReleaseRow 单语言版本的发布卡片
type ReleaseRow struct {
	// 系统保留字段
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	GroupID   *primitive.ObjectID `bson:"group_id" json:"group_id"` // 为空时以自身ID作为分组键
	Tenant    *string             `bson:"tenant" json:"tenant"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`

	// 按语言独立的字段
	Lang       Lang     `bson:"lang" json:"lang"`
	Title      string   `bson:"title" json:"title"`
	Bullets    []string `bson:"bullets" json:"bullets"`
	MonthLabel string   `bson:"month_label" json:"month_label"`
	MonthDate  string   `bson:"month_date,omitempty" json:"month_date,omitempty"` // YYYY-MM-01

	// 分组共享字段
	Size        Size        `bson:"size" json:"size"`
	OrderIndex  *int        `bson:"order_index" json:"order_index"`
	KBURL       string      `bson:"kb_url" json:"kb_url"`
	Published   bool        `bson:"published" json:"published"`
	MediaPath   string      `bson:"media_path" json:"media_path"`
	MediaType   MediaType   `bson:"media_type" json:"media_type"`
	ReleaseType ReleaseType `bson:"release_type" json:"release_type"`
	HasCost     bool        `bson:"has_cost" json:"has_cost"`

	// 已废弃，旧数据中代替 media_path
	ImagePath string `bson:"image_path,omitempty" json:"image_path,omitempty"`
}

// GroupKey group_id 优先，否则使用自身ID
func (r *ReleaseRow) GroupKey() primitive.ObjectID {
	if r.GroupID != nil && !r.GroupID.IsZero() {
		return *r.GroupID
	}
	return r.ID
}

// MediaKey 解析媒体路径，兼容旧的 image_path
func (r *ReleaseRow) MediaKey() string {
	if r.MediaPath != "" {
		return r.MediaPath
	}
	return r.ImagePath
}

// ResolvedMediaType 旧数据没有 media_type，只可能是图片
func (r *ReleaseRow) ResolvedMediaType() MediaType {
	if r.MediaPath == "" && r.ImagePath != "" {
		return MediaTypeImage
	}
	if r.MediaType == "" {
		return MediaTypeImage
	}
	return r.MediaType
}

// SharedFields 提取该行的全部共享字段
func (r *ReleaseRow) SharedFields() SharedFields {
	size := r.Size
	kb := r.KBURL
	published := r.Published
	mediaPath := r.MediaKey()
	mediaType := r.ResolvedMediaType()
	releaseType := r.ReleaseType
	hasCost := r.HasCost
	fields := SharedFields{
		Size:        &size,
		KBURL:       &kb,
		Published:   &published,
		MediaPath:   &mediaPath,
		MediaType:   &mediaType,
		ReleaseType: &releaseType,
		HasCost:     &hasCost,
	}
	if r.OrderIndex != nil {
		order := *r.OrderIndex
		fields.OrderIndex = &order
	}
	return fields
}

// ApplyShared 将共享字段写入行（仅内存）
func (r *ReleaseRow) ApplyShared(f SharedFields) {
	if f.Size != nil {
		r.Size = *f.Size
	}
	if f.OrderIndex != nil {
		order := *f.OrderIndex
		r.OrderIndex = &order
	}
	if f.KBURL != nil {
		r.KBURL = *f.KBURL
	}
	if f.Published != nil {
		r.Published = *f.Published
	}
	if f.MediaPath != nil {
		r.MediaPath = *f.MediaPath
	}
	if f.MediaType != nil {
		r.MediaType = *f.MediaType
	}
	if f.ReleaseType != nil {
		r.ReleaseType = *f.ReleaseType
	}
	if f.HasCost != nil {
		r.HasCost = *f.HasCost
	}
}

// ApplyPerLanguage 将单语言字段写入行（仅内存）
func (r *ReleaseRow) ApplyPerLanguage(f PerLanguageFields) {
	if f.Title != nil {
		r.Title = *f.Title
	}
	if f.Bullets != nil {
		r.Bullets = append([]string(nil), (*f.Bullets)...)
	}
	if f.MonthLabel != nil {
		r.MonthLabel = *f.MonthLabel
	}
	if f.MonthDate != nil {
		r.MonthDate = *f.MonthDate
	}
}

func (t MediaType) Valid() bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}
