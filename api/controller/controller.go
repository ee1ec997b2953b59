package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	APIVersion    = "1.0.0"
	ServiceType   = "releases-admin"
	ServerVersion = "0.1.0"

	responseKey = "releases-response"
)

func envelope(status string) gin.H {
	return gin.H{
		"status":        status,
		"version":       APIVersion,
		"type":          ServiceType,
		"serverVersion": ServerVersion,
	}
}

// SuccessResponse data 放在 key 下，count 为列表长度或 1
func SuccessResponse(c *gin.Context, key string, data interface{}, count int) {
	body := envelope("ok")
	body[key] = data
	body["count"] = count
	c.JSON(http.StatusOK, gin.H{responseKey: body})
}

// CreatedResponse 201
func CreatedResponse(c *gin.Context, key string, data interface{}) {
	body := envelope("ok")
	body[key] = data
	c.JSON(http.StatusCreated, gin.H{responseKey: body})
}

func ErrorResponse(c *gin.Context, status int, code string, message string) {
	ErrorDetailsResponse(c, status, code, message, nil)
}

// ErrorDetailsResponse 附带结构化信息，例如部分写入的行ID
func ErrorDetailsResponse(c *gin.Context, status int, code string, message string, details interface{}) {
	body := envelope("failed")
	errBody := gin.H{
		"code":    code,
		"message": message,
	}
	if details != nil {
		errBody["details"] = details
	}
	body["error"] = errBody
	c.AbortWithStatusJSON(status, gin.H{responseKey: body})
}
