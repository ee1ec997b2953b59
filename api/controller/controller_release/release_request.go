package controller_release

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/newreleases/admin-console/domain/domain_release/release_models"
	"github.com/newreleases/admin-console/util/util_media"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxMultipartMemory 超出部分写入临时文件
const MaxMultipartMemory = 8 << 20

type releaseFormRequest struct {
	Lang        string   `form:"lang" binding:"required"`
	Title       string   `form:"title"`
	Bullets     []string `form:"bullets"`
	Month       int      `form:"month"`
	Year        int      `form:"year"`
	Size        string   `form:"size"`
	OrderIndex  *int     `form:"order_index"`
	KBURL       string   `form:"kb_url"`
	ReleaseType string   `form:"release_type"`
	HasCost     *bool    `form:"has_cost"`
	Published   *bool    `form:"published"`
}

type translationRequest struct {
	Lang    string   `json:"lang" binding:"required"`
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
	Month   int      `json:"month"`
	Year    int      `json:"year"`
}

type statusRequest struct {
	Published *bool `json:"published" binding:"required"`
}

type bulkDeleteRequest struct {
	Selected []string `json:"selected"`
}

func parseGroupKey(c *gin.Context) (primitive.ObjectID, error) {
	key, err := primitive.ObjectIDFromHex(c.Param("key"))
	if err != nil {
		return primitive.NilObjectID, release_models.ErrInvalidGroupKey
	}
	return key, nil
}

func parseIDs(values []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := primitive.ObjectIDFromHex(part)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid id %q", release_models.ErrValidation, part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// tableStateFromQuery search, lang, status, selected
func tableStateFromQuery(c *gin.Context) (release_models.TableState, error) {
	selected, err := parseIDs(c.QueryArray("selected"))
	if err != nil {
		return release_models.TableState{}, err
	}
	return release_models.NewTableState().
		WithSearch(c.Query("search")).
		WithLang(c.Query("lang")).
		WithStatus(c.Query("status")).
		WithSelected(selected), nil
}

// openMedia 读取 media 字段并检查文件内容与声明的类型一致。
// 没有上传文件时返回 nil。调用方负责关闭返回的文件。
func openMedia(c *gin.Context) (*release_models.MediaUpload, multipart.File, error) {
	header, err := c.FormFile("media")
	if err == http.ErrMissingFile {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", release_models.ErrValidation, err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open upload: %w", err)
	}
	contentType := header.Header.Get("Content-Type")
	if err := util_media.Inspect(file, contentType); err != nil {
		_ = file.Close()
		return nil, nil, fmt.Errorf("%w: %w", release_models.ErrValidation, err)
	}

	return &release_models.MediaUpload{
		Name:        header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	}, file, nil
}
