package release_models

// CreateForm 新建表单，Month/Year 为 0 表示未选择
type CreateForm struct {
	Lang        string
	Title       string
	Bullets     []string
	Month       int
	Year        int
	Size        Size
	OrderIndex  *int
	KBURL       string
	ReleaseType ReleaseType
	HasCost     bool
	Media       *MediaUpload
}

// EditForm 编辑某个语言版本，共享字段会同步到整个分组
type EditForm struct {
	Lang        Lang        `json:"lang"`
	Title       string      `json:"title"`
	Bullets     []string    `json:"bullets"`
	Month       int         `json:"month"`
	Year        int         `json:"year"`
	Size        Size        `json:"size"`
	OrderIndex  *int        `json:"order_index"`
	KBURL       string      `json:"kb_url"`
	ReleaseType ReleaseType `json:"release_type"`

	// 为 nil 时保留分组当前值
	Published *bool `json:"published"`
	HasCost   *bool `json:"has_cost"`

	// 加载时返回当前媒体；提交时 Media 非空表示替换
	MediaPath string       `json:"media_path"`
	MediaType MediaType    `json:"media_type"`
	Media     *MediaUpload `json:"-"`
}

type TranslationForm struct {
	Lang    string
	Title   string
	Bullets []string
	Month   int
	Year    int
}
