package api

import (
	"net/http"
	"strconv"

	"github.com/bernaba123/Clearance/internal/auth"
	"github.com/bernaba123/Clearance/internal/service"
	"github.com/bernaba123/Clearance/internal/utils"
	"github.com/gin-gonic/gin"
)

// NewsController 新闻公告控制器
type NewsController struct {
	newsService service.NewsService
}

// NewNewsController 创建新闻公告控制器
func NewNewsController(newsService service.NewsService) *NewsController {
	return &NewsController{newsService: newsService}
}

// validateNewsID 验证新闻 ID 并返回错误响应（如果无效）
func (c *NewsController) validateNewsID(ctx *gin.Context, id string) bool {
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid news ID", err.Error())
		return false
	}
	return true
}

// List 列出已发布新闻
// @Summary      列出已发布新闻
// @Description  按发布时间倒序分页返回已发布新闻,可按分类过滤
// @Tags         新闻公告
// @Produce      json
// @Param        category  query string false "分类过滤" Enums(announcement, event, deadline, update)
// @Param        page      query int    false "页码,从 1 开始"
// @Param        page_size query int    false "每页数量,默认 20"
// @Success      200  {object}  PaginatedResponse
// @Router       /news [get]
func (c *NewsController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	items, total, err := c.newsService.ListPublished(ctx.Request.Context(), ctx.Query("category"), page, pageSize)
	if err != nil {
		RespondDomainError(ctx, err)
		return
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	totalPage := int((total + int64(pageSize) - 1) / int64(pageSize))
	Paginated(ctx, items, PaginationInfo{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// Get 获取单条新闻
// @Summary      获取单条新闻
// @Tags         新闻公告
// @Produce      json
// @Param        id path string true "新闻 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /news/{id} [get]
func (c *NewsController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateNewsID(ctx, id) {
		return
	}

	item, err := c.newsService.Get(ctx.Request.Context(), id)
	if err != nil {
		RespondDomainError(ctx, err)
		return
	}
	Success(ctx, item)
}

// Create 发布新闻
// @Summary      发布新闻
// @Tags         新闻公告
// @Accept       json
// @Produce      json
// @Param        request body service.CreateNewsRequest true "新闻内容"
// @Success      201  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/news [post]
// @Security     BearerAuth
func (c *NewsController) Create(ctx *gin.Context) {
	var req service.CreateNewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	authorID := ctx.GetString(auth.ContextKeyUserID)
	item, err := c.newsService.Create(ctx.Request.Context(), authorID, &req)
	if err != nil {
		RespondDomainError(ctx, err)
		return
	}
	Created(ctx, item)
}

// Update 更新新闻
// @Summary      更新新闻
// @Tags         新闻公告
// @Accept       json
// @Produce      json
// @Param        id path string true "新闻 ID"
// @Param        request body service.UpdateNewsRequest true "更新内容"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/news/{id} [put]
// @Security     BearerAuth
func (c *NewsController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateNewsID(ctx, id) {
		return
	}

	var req service.UpdateNewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	item, err := c.newsService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		RespondDomainError(ctx, err)
		return
	}
	Success(ctx, item)
}

// Delete 删除新闻
// @Summary      删除新闻
// @Tags         新闻公告
// @Produce      json
// @Param        id path string true "新闻 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/news/{id} [delete]
// @Security     BearerAuth
func (c *NewsController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateNewsID(ctx, id) {
		return
	}

	if err := c.newsService.Delete(ctx.Request.Context(), id); err != nil {
		RespondDomainError(ctx, err)
		return
	}
	Success(ctx, gin.H{"deleted": id})
}
