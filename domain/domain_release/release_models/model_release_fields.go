package release_models

import (
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// MaxBullets 每张卡片最多的亮点条目
const MaxBullets = 5

// SharedFields 分组共享字段的部分更新，nil 表示不修改
type SharedFields struct {
	Size        *Size        `json:"size,omitempty"`
	OrderIndex  *int         `json:"order_index,omitempty"`
	KBURL       *string      `json:"kb_url,omitempty"`
	Published   *bool        `json:"published,omitempty"`
	MediaPath   *string      `json:"media_path,omitempty"`
	MediaType   *MediaType   `json:"media_type,omitempty"`
	ReleaseType *ReleaseType `json:"release_type,omitempty"`
	HasCost     *bool        `json:"has_cost,omitempty"`
}

func (f SharedFields) IsEmpty() bool {
	return f.Size == nil && f.OrderIndex == nil && f.KBURL == nil && f.Published == nil &&
		f.MediaPath == nil && f.MediaType == nil && f.ReleaseType == nil && f.HasCost == nil
}

// Normalize bug 类型的发布不能收费。
// current 为分组当前的 release_type，用于只修改 has_cost 的写入。
func (f SharedFields) Normalize(current ReleaseType) SharedFields {
	if f.ReleaseType == nil && f.HasCost == nil {
		return f
	}
	effective := current
	if f.ReleaseType != nil {
		effective = *f.ReleaseType
	}
	if effective == ReleaseTypeBug {
		noCost := false
		f.HasCost = &noCost
	}
	return f
}

// SetDocument 生成 $set 内容
func (f SharedFields) SetDocument() bson.M {
	set := bson.M{}
	if f.Size != nil {
		set["size"] = *f.Size
	}
	if f.OrderIndex != nil {
		set["order_index"] = *f.OrderIndex
	}
	if f.KBURL != nil {
		set["kb_url"] = *f.KBURL
	}
	if f.Published != nil {
		set["published"] = *f.Published
	}
	if f.MediaPath != nil {
		set["media_path"] = *f.MediaPath
	}
	if f.MediaType != nil {
		set["media_type"] = *f.MediaType
	}
	if f.ReleaseType != nil {
		set["release_type"] = *f.ReleaseType
	}
	if f.HasCost != nil {
		set["has_cost"] = *f.HasCost
	}
	return set
}

// PerLanguageFields 单语言字段的部分更新
type PerLanguageFields struct {
	Title      *string   `json:"title,omitempty"`
	Bullets    *[]string `json:"bullets,omitempty"`
	MonthLabel *string   `json:"month_label,omitempty"`
	MonthDate  *string   `json:"month_date,omitempty"`
}

func (f PerLanguageFields) IsEmpty() bool {
	return f.Title == nil && f.Bullets == nil && f.MonthLabel == nil && f.MonthDate == nil
}

func (f PerLanguageFields) SetDocument() bson.M {
	set := bson.M{}
	if f.Title != nil {
		set["title"] = *f.Title
	}
	if f.Bullets != nil {
		set["bullets"] = CleanBullets(*f.Bullets)
	}
	if f.MonthLabel != nil {
		set["month_label"] = *f.MonthLabel
	}
	if f.MonthDate != nil {
		set["month_date"] = *f.MonthDate
	}
	return set
}

// CleanBullets 去掉空白条目
func CleanBullets(bullets []string) []string {
	out := make([]string, 0, len(bullets))
	for _, b := range bullets {
		if strings.TrimSpace(b) != "" {
			out = append(out, b)
		}
	}
	return out
}

// MediaUpload 待上传的媒体文件
type MediaUpload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// CreateInput 新建发布（单行、单语言）
type CreateInput struct {
	Lang       Lang
	Title      string
	Bullets    []string
	MonthLabel string
	MonthDate  string

	Size        Size
	OrderIndex  *int
	KBURL       string
	ReleaseType ReleaseType
	HasCost     bool

	Media *MediaUpload
}
