package api

import (
	"net/http"

	"github.com/bernaba123/Clearance/internal/auth"
	"github.com/bernaba123/Clearance/internal/service"
	"github.com/bernaba123/Clearance/internal/utils"
	"github.com/gin-gonic/gin"
)

// ClearanceController 离校申请控制器
type ClearanceController struct {
	clearanceService   service.ClearanceService
	certificateService service.CertificateService
}

// NewClearanceController 创建离校申请控制器
func NewClearanceController(clearanceService service.ClearanceService, certificateService service.CertificateService) *ClearanceController {
	return &ClearanceController{
		clearanceService:   clearanceService,
		certificateService: certificateService,
	}
}

// validateClearanceID 验证申请 ID 并返回错误响应（如果无效）
func (c *ClearanceController) validateClearanceID(ctx *gin.Context, id string) bool {
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid clearance ID", err.Error())
		return false
	}
	return true
}

// Apply 提交离校申请
// @Summary      提交离校申请
// @Description  学生提交离校申请,初始化 8 个审批槽位
// @Tags         离校申请
// @Accept       json
// @Produce      json
// @Param        request body service.ApplyRequest true "申请信息"
// @Success      201  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /clearance/apply [post]
// @Security     BearerAuth
func (c *ClearanceController) Apply(ctx *gin.Context) {
	var req service.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	studentID := ctx.GetString(auth.ContextKeyUserID)
	app, err := c.clearanceService.Apply(ctx.Request.Context(), studentID, &req)
	if err != nil {
		RespondDomainError(ctx, err)
		return
	}

	Created(ctx, app)
}

// Status 查询申请状态
// @Summary      查询申请状态
// @Description  返回当前学生最近一份申请及其 8 条审批记录
// @Tags         离校申请
// @Produce      json
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /clearance/status [get]
// @Security     BearerAuth
func (c *ClearanceController) Status(ctx *gin.Context) {
	studentID := ctx.GetString(auth.ContextKeyUserID)
	app, err := c.clearanceService.Status(ctx.Request.Context(), studentID)
	if err != nil {
		RespondDomainError(ctx, err)
		return
	}

	Success(ctx, app)
}

// Review 提交审批决定
// @Summary      提交审批决定
// @Description  审批角色对指定申请的本角色槽位做出 approved/rejected 决定
// @Tags         审批
// @Accept       json
// @Produce      json
// @Param        id path string true "申请 ID"
// @Param        request body service.ReviewRequest true "审批决定"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /clearance/{id}/review [post]
// @Security     BearerAuth
func (c *ClearanceController) Review(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateClearanceID(ctx, id) {
		return
	}

	var req service.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	req.Actor = auth.CurrentActor(ctx)

	app, err := c.clearanceService.Review(ctx.Request.Context(), id, &req)
	if err != nil {
		RespondDomainError(ctx, err)
		return
	}

	Success(ctx, app)
}

// Certificate 下载离校证书
// @Summary      下载离校证书
// @Description  全部 8 个角色批准后生成 PDF 证书,首次下载落证书签发标志
// @Tags         离校申请
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /clearance/certificate [get]
// @Security     BearerAuth
func (c *ClearanceController) Certificate(ctx *gin.Context) {
	studentID := ctx.GetString(auth.ContextKeyUserID)
	pdf, err := c.certificateService.Render(ctx.Request.Context(), studentID)
	if err != nil {
		RespondDomainError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="clearance-certificate.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}
