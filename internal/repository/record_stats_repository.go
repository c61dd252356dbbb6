package repository

import (
	"context"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/model"
	"gorm.io/gorm"
)

// ApprovalRecordStatsRepository 审批记录统计仓储接口
// 为各审批角色的工作台提供按槽位维度的计数
type ApprovalRecordStatsRepository interface {
	CountPendingForRole(ctx context.Context, role clearance.AuthorityRole) (int64, error)
	CountDecisionForRole(ctx context.Context, role clearance.AuthorityRole, decision clearance.Decision) (int64, error)
}

// approvalRecordStatsRepository 审批记录统计仓储实现
type approvalRecordStatsRepository struct {
	db *gorm.DB
}

// NewApprovalRecordStatsRepository 创建审批记录统计仓储
func NewApprovalRecordStatsRepository(db *gorm.DB) ApprovalRecordStatsRepository {
	return &approvalRecordStatsRepository{db: db}
}

// CountPendingForRole 统计某角色的待办数量
// 只统计申请本身仍处于活跃状态的槽位,终态申请的 pending 槽位不再是待办
func (r *approvalRecordStatsRepository) CountPendingForRole(ctx context.Context, role clearance.AuthorityRole) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ApprovalRecordModel{}).
		Joins("JOIN clearances ON clearances.id = approval_records.clearance_id").
		Where("approval_records.role = ? AND approval_records.decision = ?", role.String(), clearance.DecisionPending.String()).
		Where("clearances.status IN ?", []string{clearance.StatusPending.String(), clearance.StatusInProgress.String()}).
		Count(&count).Error
	return count, err
}

// CountDecisionForRole 统计某角色已做出指定决定的数量
func (r *approvalRecordStatsRepository) CountDecisionForRole(ctx context.Context, role clearance.AuthorityRole, decision clearance.Decision) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ApprovalRecordModel{}).
		Where("role = ? AND decision = ?", role.String(), decision.String()).
		Count(&count).Error
	return count, err
}
