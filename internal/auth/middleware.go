package auth

import (
	"net/http"
	"strings"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/model"
	"github.com/gin-gonic/gin"
)

// gin 上下文键
const (
	ContextKeyUserID     = "user_id"
	ContextKeyUserName   = "user_name"
	ContextKeyUserRole   = "user_role"
	ContextKeyDepartment = "user_department"
	ContextKeyCollege    = "user_college"
)

// AuthMiddleware 身份认证中间件
// 校验 Bearer 令牌并把身份声明写入请求上下文
func AuthMiddleware(validator *TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "invalid authorization header format",
			})
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(ContextKeyUserID, claims.Subject)
		c.Set(ContextKeyUserName, claims.FullName)
		c.Set(ContextKeyUserRole, claims.Role)
		c.Set(ContextKeyDepartment, claims.Department)
		c.Set(ContextKeyCollege, claims.College)
		c.Next()
	}
}

// RequireStudent 只允许学生访问
func RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextKeyUserRole) != model.RoleStudent {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    http.StatusForbidden,
				"message": "students only",
			})
			return
		}
		c.Next()
	}
}

// RequireAuthority 只允许 8 个审批角色访问
func RequireAuthority() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := clearance.AuthorityRole(c.GetString(ContextKeyUserRole))
		if !role.Valid() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    http.StatusForbidden,
				"message": "reviewing authorities only",
			})
			return
		}
		c.Next()
	}
}

// RequireSystemAdmin 只允许系统管理员访问
func RequireSystemAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextKeyUserRole) != model.RoleSystemAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    http.StatusForbidden,
				"message": "system administrators only",
			})
			return
		}
		c.Next()
	}
}

// CurrentActor 从请求上下文还原审批操作者
func CurrentActor(c *gin.Context) clearance.Actor {
	return clearance.Actor{
		ID:         c.GetString(ContextKeyUserID),
		Role:       clearance.AuthorityRole(c.GetString(ContextKeyUserRole)),
		Department: c.GetString(ContextKeyDepartment),
		College:    c.GetString(ContextKeyCollege),
	}
}
