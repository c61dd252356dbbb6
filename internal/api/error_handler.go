package api

import (
	"errors"
	"net/http"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/gin-gonic/gin"
)

// APIError API 错误
type APIError struct {
	Code    int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorHandlerMiddleware 错误处理中间件
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			var apiErr *APIError
			if errors.As(err, &apiErr) {
				Error(c, apiErr.Code, apiErr.Message, apiErr.Detail)
			} else {
				Error(c, http.StatusInternalServerError, "internal server error", err.Error())
			}
		}
	}
}

// WrapError 包装错误
func WrapError(err error, code int, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Detail:  err.Error(),
	}
}

// RespondDomainError 把领域错误翻译为 HTTP 响应
// 每一类错误有固定的状态码,控制器不自行挑选状态码
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, clearance.ErrValidation):
		Error(c, http.StatusBadRequest, "validation failed", err.Error())
	case errors.Is(err, clearance.ErrNotFound):
		Error(c, http.StatusNotFound, "resource not found", err.Error())
	case errors.Is(err, clearance.ErrUnauthorized):
		Error(c, http.StatusForbidden, "role not permitted", err.Error())
	case errors.Is(err, clearance.ErrScopeMismatch):
		Error(c, http.StatusForbidden, "student outside reviewer scope", err.Error())
	case errors.Is(err, clearance.ErrActiveApplicationExists):
		Error(c, http.StatusConflict, "active application already exists", err.Error())
	case errors.Is(err, clearance.ErrAlreadyDecided):
		Error(c, http.StatusConflict, "decision already recorded", err.Error())
	case errors.Is(err, clearance.ErrVersionConflict):
		Error(c, http.StatusConflict, "concurrent update detected", err.Error())
	case errors.Is(err, clearance.ErrSystemDisabled):
		Error(c, http.StatusServiceUnavailable, "clearance system is currently disabled", err.Error())
	case errors.Is(err, clearance.ErrNotCompleted):
		Error(c, http.StatusConflict, "clearance is not completed", err.Error())
	default:
		Error(c, http.StatusInternalServerError, "internal server error", err.Error())
	}
}
