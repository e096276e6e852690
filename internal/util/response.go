package util

import (
	"net/http"

	"spmtutor/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error string `json:"error" example:"step_mismatch"`
}

// OKResponse 无数据的成功响应
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func OK(c *gin.Context) {
	c.JSON(http.StatusOK, OKResponse{OK: true})
}

func Error(c *gin.Context, status int, code string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: code})
}

func Unauthorized(c *gin.Context) {
	Error(c, ErrUnauthorized.Status, ErrUnauthorized.Code)
}

func Forbidden(c *gin.Context) {
	Error(c, ErrForbidden.Status, ErrForbidden.Code)
}

func BadRequest(c *gin.Context, code string) {
	Error(c, http.StatusBadRequest, code)
}

// HandleError 将 service 层错误映射为响应，5xx 记录日志
func HandleError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Log.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", appErr.Code),
			zap.Error(err))
	}
	Error(c, appErr.Status, appErr.Code)
}
