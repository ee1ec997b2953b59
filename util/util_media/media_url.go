package util_media

import (
	"strings"

	"github.com/newreleases/admin-console/domain/domain_release/release_models"
)

// URLResolver 由存储实现
type URLResolver interface {
	PublicURL(key string) string
}

// IsRemote 完整的 http 地址不属于本存储
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http")
}

// PublicURL 已是完整地址时原样返回
func PublicURL(resolver URLResolver, path string) string {
	if path == "" {
		return ""
	}
	if IsRemote(path) {
		return path
	}
	if resolver == nil {
		return ""
	}
	return resolver.PublicURL(path)
}

// ResolvePath media_path 优先，兼容旧的 image_path
func ResolvePath(row *release_models.ReleaseRow) string {
	if row == nil {
		return ""
	}
	return row.MediaKey()
}
