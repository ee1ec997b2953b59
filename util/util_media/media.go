package util_media

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/newreleases/admin-console/domain/domain_release/release_models"
)

const (
	MaxImageSize int64 = 5 * 1024 * 1024
	MaxVideoSize int64 = 50 * 1024 * 1024

	// StoragePrefix 所有上传媒体的 key 前缀
	StoragePrefix = "releases/"
)

var (
	ErrUnsupportedType = errors.New("unsupported media type")
	ErrTooLarge        = errors.New("media file too large")
	ErrContentMismatch = errors.New("media content does not match declared type")
)

var (
	allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}
	allowedVideoTypes = []string{"video/mp4", "video/webm"}
)

// RejectionError 校验失败，Message 直接展示给用户
type RejectionError struct {
	Reason  error
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

func (e *RejectionError) Unwrap() error {
	return e.Reason
}

func reject(reason error, message string) error {
	return &RejectionError{Reason: reason, Message: message}
}

// Candidate 待校验的文件
type Candidate struct {
	Name        string
	ContentType string
	Size        int64
}

// Classify 以声明的 MIME 判断媒体类型
func Classify(contentType string) release_models.MediaType {
	if strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return release_models.MediaTypeVideo
	}
	return release_models.MediaTypeImage
}

// Validate 检查类型和大小
func Validate(c Candidate) (release_models.MediaType, error) {
	mediaType := Classify(c.ContentType)
	declared := normalizeMIME(c.ContentType)

	switch mediaType {
	case release_models.MediaTypeVideo:
		if !contains(allowedVideoTypes, declared) {
			return "", reject(ErrUnsupportedType, "Video must be MP4 or WebM")
		}
		if c.Size > MaxVideoSize {
			return "", reject(ErrTooLarge, "Video must be less than 50MB")
		}
	default:
		if !contains(allowedImageTypes, declared) {
			return "", reject(ErrUnsupportedType, "Image must be JPEG, PNG, or WebP")
		}
		if c.Size > MaxImageSize {
			return "", reject(ErrTooLarge, "Image must be less than 5MB")
		}
	}
	return mediaType, nil
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^a-z0-9.-]`)
	dotRun        = regexp.MustCompile(`\.+`)
	edgeDashes    = regexp.MustCompile(`^-+|-+$`)
)

// SanitizeFilename 只保留小写字母、数字、点和短横线
func SanitizeFilename(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = dotRun.ReplaceAllString(s, ".")
	return edgeDashes.ReplaceAllString(s, "")
}

// StorageKey releases/<uuid>-<文件名>
func StorageKey(name string) string {
	return fmt.Sprintf("%s%s-%s", StoragePrefix, uuid.NewString(), SanitizeFilename(name))
}

// normalizeMIME 去掉参数部分，如 "video/mp4; codecs=..."
func normalizeMIME(contentType string) string {
	v, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(v))
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
