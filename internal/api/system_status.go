package api

import (
	"net/http"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/gin-gonic/gin"
)

// SystemGateMiddleware 系统开关中间件
// 清单系统被管理员关闭时拒绝学生侧请求;开关读取失败按开放处理,
// 审批角色和管理员不受该开关限制
func SystemGateMiddleware(gate *clearance.EligibilityGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gate.ClearanceSystemActive(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{
				Code:    http.StatusServiceUnavailable,
				Message: "clearance system is currently disabled",
			})
			return
		}
		c.Next()
	}
}
