package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 业务错误码。HTTP 状态码固定 200，前端只看 code
const (
	CodeSuccess          = 0
	CodeParamError       = 1000
	CodeAuthFailed       = 1001
	CodePermissionDenied = 1002
	CodeResourceNotFound = 1003
	CodeServerError      = 5000
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PageData 分页数据结构
type PageData struct {
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Items    interface{} `json:"items"`
}

func defaultMessage(code int) string {
	switch code {
	case CodeSuccess:
		return "success"
	case CodeParamError:
		return "参数错误"
	case CodeAuthFailed:
		return "认证失败"
	case CodePermissionDenied:
		return "权限不足"
	case CodeResourceNotFound:
		return "资源不存在"
	default:
		return "服务器内部错误"
	}
}

func write(c *gin.Context, code int, message string, data interface{}) {
	if message == "" {
		message = defaultMessage(code)
	}
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	write(c, CodeSuccess, "", data)
}

// SuccessWithMessage 带自定义消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	write(c, CodeSuccess, message, data)
}

// SuccessPage 分页成功响应
func SuccessPage(c *gin.Context, total int64, page, pageSize int, items interface{}) {
	write(c, CodeSuccess, "", PageData{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	})
}

// Error 错误响应，message 为空时使用错误码的默认文案
func Error(c *gin.Context, code int, message string) {
	write(c, code, message, nil)
}

// ParamError 参数错误
func ParamError(c *gin.Context, message string) {
	Error(c, CodeParamError, message)
}

// AuthError 认证失败
func AuthError(c *gin.Context, message string) {
	Error(c, CodeAuthFailed, message)
}

// PermissionError 权限不足
func PermissionError(c *gin.Context, message string) {
	Error(c, CodePermissionDenied, message)
}

// NotFoundError 资源不存在
func NotFoundError(c *gin.Context, message string) {
	Error(c, CodeResourceNotFound, message)
}

// ServerError 服务器错误
func ServerError(c *gin.Context, message string) {
	Error(c, CodeServerError, message)
}
