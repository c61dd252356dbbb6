package api

import (
	"net/http"

	"github.com/bernaba123/Clearance/internal/auth"
	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/service"
	"github.com/gin-gonic/gin"
)

// AdminController 管理控制台控制器
type AdminController struct {
	clearanceService service.ClearanceService
	settingService   service.SettingService
	statsService     service.StatsService
}

// NewAdminController 创建管理控制台控制器
func NewAdminController(clearanceService service.ClearanceService, settingService service.SettingService, statsService service.StatsService) *AdminController {
	return &AdminController{
		clearanceService: clearanceService,
		settingService:   settingService,
		statsService:     statsService,
	}
}

// ToggleRequest 开关切换请求
// @Description 系统开关切换请求参数
type ToggleRequest struct {
	Active *bool `json:"active" binding:"required" example:"true"` // 目标状态
}

// SystemStatus 查询系统开关状态
// @Summary      查询系统开关状态
// @Description  返回清单系统开关与注册开关的当前状态
// @Tags         系统管理
// @Produce      json
// @Success      200  {object}  Response
// @Router       /admin/system-status [get]
// @Security     BearerAuth
func (c *AdminController) SystemStatus(ctx *gin.Context) {
	Success(ctx, c.settingService.GetSystemStatus(ctx.Request.Context()))
}

// ToggleClearanceSystem 切换清单系统开关
// @Summary      切换清单系统开关
// @Description  关闭后学生无法提交和查询申请,审批与管理不受影响
// @Tags         系统管理
// @Accept       json
// @Produce      json
// @Param        request body ToggleRequest true "目标状态"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/settings/clearance-system [put]
// @Security     BearerAuth
func (c *AdminController) ToggleClearanceSystem(ctx *gin.Context) {
	var req ToggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	adminID := ctx.GetString(auth.ContextKeyUserID)
	if err := c.settingService.SetClearanceSystemActive(ctx.Request.Context(), *req.Active, adminID); err != nil {
		RespondDomainError(ctx, err)
		return
	}

	Success(ctx, c.settingService.GetSystemStatus(ctx.Request.Context()))
}

// ToggleRegistration 切换注册开关
// @Summary      切换注册开关
// @Description  关闭后不再接受新账号注册
// @Tags         系统管理
// @Accept       json
// @Produce      json
// @Param        request body ToggleRequest true "目标状态"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/settings/registration [put]
// @Security     BearerAuth
func (c *AdminController) ToggleRegistration(ctx *gin.Context) {
	var req ToggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	adminID := ctx.GetString(auth.ContextKeyUserID)
	if err := c.settingService.SetRegistrationActive(ctx.Request.Context(), *req.Active, adminID); err != nil {
		RespondDomainError(ctx, err)
		return
	}

	Success(ctx, c.settingService.GetSystemStatus(ctx.Request.Context()))
}

// ListClearances 列出申请
// @Summary      列出申请
// @Description  列出全部申请,可按整体状态过滤
// @Tags         系统管理
// @Produce      json
// @Param        status query string false "整体状态过滤" Enums(pending, in_progress, completed, rejected)
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/clearances [get]
// @Security     BearerAuth
func (c *AdminController) ListClearances(ctx *gin.Context) {
	statusFilter := ctx.Query("status")
	if statusFilter == "" {
		apps, err := c.clearanceService.ListAll(ctx.Request.Context())
		if err != nil {
			RespondDomainError(ctx, err)
			return
		}
		Success(ctx, apps)
		return
	}

	status := clearance.OverallStatus(statusFilter)
	switch status {
	case clearance.StatusPending, clearance.StatusInProgress, clearance.StatusCompleted, clearance.StatusRejected:
	default:
		Error(ctx, http.StatusBadRequest, "invalid status filter", statusFilter)
		return
	}

	apps, err := c.clearanceService.ListByStatus(ctx.Request.Context(), status)
	if err != nil {
		RespondDomainError(ctx, err)
		return
	}
	Success(ctx, apps)
}

// OfficeStats 查询审批角色工作台统计
// @Summary      查询审批角色工作台统计
// @Description  返回当前审批角色的待办与已办数量
// @Tags         审批
// @Produce      json
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Router       /office/stats [get]
// @Security     BearerAuth
func (c *AdminController) OfficeStats(ctx *gin.Context) {
	role := clearance.AuthorityRole(ctx.GetString(auth.ContextKeyUserRole))
	stats, err := c.statsService.OfficeStats(ctx.Request.Context(), role)
	if err != nil {
		RespondDomainError(ctx, err)
		return
	}
	Success(ctx, stats)
}
