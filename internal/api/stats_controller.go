package api

import (
	"github.com/bernaba123/Clearance/internal/service"
	"github.com/gin-gonic/gin"
)

// StatsController 公开统计控制器
type StatsController struct {
	statsService service.StatsService
}

// NewStatsController 创建公开统计控制器
func NewStatsController(statsService service.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// Public 查询公开统计
// @Summary      查询公开统计
// @Description  返回首页展示的学生数与申请数概览,无需登录
// @Tags         统计
// @Produce      json
// @Success      200  {object}  Response
// @Router       /stats [get]
func (c *StatsController) Public(ctx *gin.Context) {
	stats, err := c.statsService.PublicStats(ctx.Request.Context())
	if err != nil {
		RespondDomainError(ctx, err)
		return
	}

	// 顺手刷新按状态分布的 gauge,公开页是最常被抓取的入口
	c.statsService.RefreshStatusGauges(ctx.Request.Context())

	Success(ctx, stats)
}
