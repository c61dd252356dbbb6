package service

import (
	"context"
	"fmt"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/metrics"
	"github.com/bernaba123/Clearance/internal/repository"
)

// ClearanceService 离校申请服务接口
type ClearanceService interface {
	Apply(ctx context.Context, studentID string, req *ApplyRequest) (*clearance.Application, error)
	Status(ctx context.Context, studentID string) (*clearance.Application, error)
	Review(ctx context.Context, applicationID string, req *ReviewRequest) (*clearance.Application, error)
	ListAll(ctx context.Context) ([]*clearance.Application, error)
	ListByStatus(ctx context.Context, status clearance.OverallStatus) ([]*clearance.Application, error)
}

// ApplyRequest 提交申请请求
// @Description 学生提交离校申请的请求参数
type ApplyRequest struct {
	IsEarlyApplication bool   `json:"is_early_application"`                            // 是否提前离校
	EarlyReason        string `json:"early_reason" example:"graduating early"`         // 提前离校理由(提前申请必填)
	AdditionalInfo     string `json:"additional_info" example:"dorm keys returned"`    // 补充说明
	AgreeToTerms       bool   `json:"agree_to_terms" binding:"required" example:"true"` // 必须同意条款
}

// ReviewRequest 审批请求
// @Description 审批角色对申请槽位做出决定的请求参数
type ReviewRequest struct {
	Role     string          `json:"role" binding:"required" example:"chief_librarian"` // 目标审批槽位
	Decision string          `json:"decision" binding:"required" example:"approved"`    // approved 或 rejected
	Comment  string          `json:"comment" example:"no pending obligations"`          // 审批意见
	Actor    clearance.Actor `json:"-"`                                                 // 操作者,由认证中间件填充
}

// StatusNotifier 状态变更通知接口
// 由 WebSocket hub 实现,审批决定落库后向订阅方推送最新状态
type StatusNotifier interface {
	NotifyStatus(app *clearance.Application)
}

// clearanceService 离校申请服务实现
type clearanceService struct {
	processor   *clearance.ReviewProcessor
	repo        repository.ClearanceRepository
	auditLogSvc AuditLogService
	notifier    StatusNotifier
}

// NewClearanceService 创建离校申请服务
func NewClearanceService(processor *clearance.ReviewProcessor, repo repository.ClearanceRepository, auditLogSvc AuditLogService, notifier StatusNotifier) ClearanceService {
	return &clearanceService{
		processor:   processor,
		repo:        repo,
		auditLogSvc: auditLogSvc,
		notifier:    notifier,
	}
}

// Apply 提交离校申请
// 资格闸门已由调用层检查;这里只负责"一人一份活跃申请"不变量与记录初始化
func (s *clearanceService) Apply(ctx context.Context, studentID string, req *ApplyRequest) (*clearance.Application, error) {
	if !req.AgreeToTerms {
		return nil, fmt.Errorf("%w: you must agree to terms and conditions", clearance.ErrValidation)
	}

	app, err := s.processor.CreateApplication(ctx, studentID, req.IsEarlyApplication, req.EarlyReason, req.AdditionalInfo)
	if err != nil {
		return nil, err
	}

	metrics.RecordApplicationCreated()

	if s.auditLogSvc != nil {
		details := map[string]interface{}{
			"clearance_id": app.ID,
			"is_early":     app.IsEarlyApplication,
		}
		_ = s.auditLogSvc.RecordAction(ctx, studentID, "apply", "clearance", app.ID, details)
	}

	return app, nil
}

// Status 查询学生最近一份申请
func (s *clearanceService) Status(ctx context.Context, studentID string) (*clearance.Application, error) {
	return s.processor.GetApplication(ctx, studentID)
}

// Review 提交单个角色的审批决定
func (s *clearanceService) Review(ctx context.Context, applicationID string, req *ReviewRequest) (*clearance.Application, error) {
	role, err := clearance.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	decision, err := clearance.ParseDecision(req.Decision)
	if err != nil {
		return nil, err
	}

	app, err := s.processor.SubmitDecision(ctx, applicationID, role, req.Actor, decision, req.Comment)
	if err != nil {
		return nil, err
	}

	metrics.RecordDecision(role.String(), decision.String())

	if s.auditLogSvc != nil {
		details := map[string]interface{}{
			"clearance_id": app.ID,
			"role":         role.String(),
			"comment":      req.Comment,
		}
		_ = s.auditLogSvc.RecordAction(ctx, req.Actor.ID, decision.String(), "clearance", app.ID, details)
	}

	// 证书渲染与通知是调用方观察到 completed 后的外部副作用,核心不阻塞在它们上面
	if s.notifier != nil {
		s.notifier.NotifyStatus(app)
	}

	return app, nil
}

// ListAll 查找全部申请(管理端)
func (s *clearanceService) ListAll(ctx context.Context) ([]*clearance.Application, error) {
	return s.repo.FindAll(ctx)
}

// ListByStatus 按状态查找申请(管理端)
func (s *clearanceService) ListByStatus(ctx context.Context, status clearance.OverallStatus) ([]*clearance.Application, error) {
	return s.repo.FindByStatus(ctx, status)
}
