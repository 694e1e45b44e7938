package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/stockroom/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（非HTTP状态码），方便客户端判断错误类型
// 2. Message是用户友好的提示信息
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

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := service.CreateOrder(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误只返回脱敏后的Message，细节留在appErr.Err里由日志记录
	c.JSON(httpStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(httpStatus(code), Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// httpStatus 业务错误码 → HTTP状态码
// 映射规则：
// - 404xx → 404（资源不存在）
// - 401xx → 401/403（认证/授权失败）
// - 4xxxx → 400（业务规则、参数错误）
// - 其他  → 500（内部错误，不泄露细节）
func httpStatus(code int) int {
	switch {
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code == apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case code >= 40100 && code < 40200:
		return http.StatusUnauthorized
	case code >= 40000 && code < 50000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// =========================================
// 游标分页响应结构
// =========================================

// Cursor 游标对（next/prev都是不透明的base64字符串）
type Cursor struct {
	Next *string `json:"next"`
	Prev *string `json:"prev"`
}

// CursorPage 游标分页数据封装
// 设计说明：
// 1. 不返回total（游标分页不做COUNT，避免大表全扫）
// 2. next为null表示没有下一页，prev为null表示没有上一页
type CursorPage struct {
	List   interface{} `json:"list"`
	Cursor Cursor      `json:"cursor"`
}

// SuccessWithCursor 游标分页成功响应
func SuccessWithCursor(c *gin.Context, list interface{}, next, prev *string) {
	Success(c, &CursorPage{
		List:   list,
		Cursor: Cursor{Next: next, Prev: prev},
	})
}
