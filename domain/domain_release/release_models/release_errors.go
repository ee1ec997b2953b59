package release_models

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrValidation 表单校验错误的根错误，在任何外部调用之前返回
var ErrValidation = errors.New("validation failed")

var (
	ErrTitleRequired   = fmt.Errorf("%w: title is required", ErrValidation)
	ErrMediaRequired   = fmt.Errorf("%w: media is required", ErrValidation)
	ErrMonthRequired   = fmt.Errorf("%w: month and year are required", ErrValidation)
	ErrInvalidLang     = fmt.Errorf("%w: language must be ES, EN or PT", ErrValidation)
	ErrInvalidSize     = fmt.Errorf("%w: size must be sm, md or lg", ErrValidation)
	ErrInvalidType     = fmt.Errorf("%w: release type must be feature or bug", ErrValidation)
	ErrTooManyBullets  = fmt.Errorf("%w: at most %d bullets are allowed", ErrValidation, MaxBullets)
	ErrNothingToUpdate = fmt.Errorf("%w: nothing to update", ErrValidation)
	ErrInvalidGroupKey = fmt.Errorf("%w: invalid group key", ErrValidation)
)

var (
	ErrGroupNotFound          = errors.New("release group not found")
	ErrLanguageNotInGroup     = errors.New("language not present in group")
	ErrDuplicateLanguage      = errors.New("language already exists in group")
	ErrOnlyTranslation        = errors.New("cannot delete the only translation")
	ErrStatusUpdateInProgress = errors.New("status update already in progress for this group")
	ErrUploadFailed           = errors.New("media upload failed")
	ErrGroupBackfillFailed    = errors.New("group id backfill failed")
)

// PartialWriteError 多行顺序写入在中途失败。
// Updated 中的行已提交，Failed 为失败行，Remaining 未执行，调用方可以只重试剩余部分。
type PartialWriteError struct {
	Op        string
	Updated   []primitive.ObjectID
	Failed    primitive.ObjectID
	Remaining []primitive.ObjectID
	Err       error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s: row %s failed after %d of %d rows were written: %v",
		e.Op, e.Failed.Hex(), len(e.Updated), len(e.Updated)+1+len(e.Remaining), e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

// Inconsistent 已有部分行提交，分组的共享字段不再一致
func (e *PartialWriteError) Inconsistent() bool {
	return len(e.Updated) > 0
}

func (e *PartialWriteError) Details() map[string]interface{} {
	return map[string]interface{}{
		"op":        e.Op,
		"updated":   hexIDs(e.Updated),
		"failed":    e.Failed.Hex(),
		"remaining": hexIDs(e.Remaining),
		"cause":     strings.TrimSpace(fmt.Sprint(e.Err)),
	}
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}
