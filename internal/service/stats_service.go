package service

import (
	"context"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/metrics"
	"github.com/bernaba123/Clearance/internal/repository"
)

// PublicStats 对外公开的概览数字
// @Description 首页展示的聚合统计
type PublicStats struct {
	TotalStudents       int64 `json:"total_students"`       // 在册学生数
	PendingClearances   int64 `json:"pending_clearances"`   // 处理中的申请(pending + in_progress)
	CompletedClearances int64 `json:"completed_clearances"` // 已完成的申请
	ActiveAdmins        int64 `json:"active_admins"`        // 活跃的审批/管理账号数
}

// OfficeStats 单个审批角色的工作台统计
// @Description 某个审批槽位的待办与已办数量
type OfficeStats struct {
	Role     string `json:"role"`     // 审批角色
	Pending  int64  `json:"pending"`  // 待该角色处理的申请数
	Approved int64  `json:"approved"` // 该角色已批准数
	Rejected int64  `json:"rejected"` // 该角色已拒绝数
}

// StatsService 统计服务接口
type StatsService interface {
	PublicStats(ctx context.Context) (*PublicStats, error)
	OfficeStats(ctx context.Context, role clearance.AuthorityRole) (*OfficeStats, error)
	RefreshStatusGauges(ctx context.Context)
}

// statsService 统计服务实现
type statsService struct {
	clearanceRepo repository.ClearanceRepository
	userRepo      repository.UserRepository
	recordRepo    repository.ApprovalRecordStatsRepository
}

// NewStatsService 创建统计服务
func NewStatsService(clearanceRepo repository.ClearanceRepository, userRepo repository.UserRepository, recordRepo repository.ApprovalRecordStatsRepository) StatsService {
	return &statsService{
		clearanceRepo: clearanceRepo,
		userRepo:      userRepo,
		recordRepo:    recordRepo,
	}
}

// PublicStats 聚合首页统计
func (s *statsService) PublicStats(ctx context.Context) (*PublicStats, error) {
	totalStudents, err := s.userRepo.CountStudents()
	if err != nil {
		return nil, err
	}
	pending, err := s.clearanceRepo.CountByStatus(ctx, clearance.StatusPending, clearance.StatusInProgress)
	if err != nil {
		return nil, err
	}
	completed, err := s.clearanceRepo.CountByStatus(ctx, clearance.StatusCompleted)
	if err != nil {
		return nil, err
	}
	activeAdmins, err := s.userRepo.CountActiveAdmins()
	if err != nil {
		return nil, err
	}
	return &PublicStats{
		TotalStudents:       totalStudents,
		PendingClearances:   pending,
		CompletedClearances: completed,
		ActiveAdmins:        activeAdmins,
	}, nil
}

// OfficeStats 聚合单个审批角色的工作台统计
func (s *statsService) OfficeStats(ctx context.Context, role clearance.AuthorityRole) (*OfficeStats, error) {
	pending, err := s.recordRepo.CountPendingForRole(ctx, role)
	if err != nil {
		return nil, err
	}
	approved, err := s.recordRepo.CountDecisionForRole(ctx, role, clearance.DecisionApproved)
	if err != nil {
		return nil, err
	}
	rejected, err := s.recordRepo.CountDecisionForRole(ctx, role, clearance.DecisionRejected)
	if err != nil {
		return nil, err
	}
	return &OfficeStats{
		Role:     role.String(),
		Pending:  pending,
		Approved: approved,
		Rejected: rejected,
	}, nil
}

// RefreshStatusGauges 刷新按状态分布的监控指标
// 指标刷新失败只影响可观测性,不影响业务,错误在此吞掉
func (s *statsService) RefreshStatusGauges(ctx context.Context) {
	for _, status := range []clearance.OverallStatus{
		clearance.StatusPending,
		clearance.StatusInProgress,
		clearance.StatusCompleted,
		clearance.StatusRejected,
	} {
		count, err := s.clearanceRepo.CountByStatus(ctx, status)
		if err != nil {
			continue
		}
		metrics.SetClearancesByStatus(status.String(), float64(count))
	}
}
