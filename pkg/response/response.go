package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码，方便客户端判断错误类型
// 2. HTTP状态码由业务错误码推导（403/404/400等），客户端两者都可以使用
// 3. Data是业务数据，成功时返回，失败时为null
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功（HTTP 201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

// NoContent 删除成功等无响应体场景（HTTP 204）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := bookService.UpdateBook(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	// 提取AppError
	appErr := apperrors.GetAppError(err)

	// 记录详细错误到日志（包含内部错误）
	if appErr.Err != nil {
		zap.L().Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Int("code", appErr.Code),
			zap.Error(appErr.Err),
		)
	}

	// 返回用户友好的错误信息
	c.JSON(apperrors.HTTPStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(apperrors.HTTPStatus(code), Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}
