package repository

import (
	"github.com/bernaba123/Clearance/internal/model"
	"gorm.io/gorm"
)

// AuditLogRepository 审计日志仓储接口
type AuditLogRepository interface {
	Save(log *model.AuditLogModel) error
	FindByUserID(userID string) ([]*model.AuditLogModel, error)
	FindByClearance(clearanceID string) ([]*model.AuditLogModel, error)
	FindRecent(limit int) ([]*model.AuditLogModel, error)
}

// auditLogRepository 审计日志仓储实现
type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository 创建审计日志仓储
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Save 保存审计日志
func (r *auditLogRepository) Save(log *model.AuditLogModel) error {
	if err := log.Validate(); err != nil {
		return err
	}
	return r.db.Save(log).Error
}

// FindByUserID 根据用户 ID 查找审计日志
func (r *auditLogRepository) FindByUserID(userID string) ([]*model.AuditLogModel, error) {
	var logs []*model.AuditLogModel
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&logs).Error
	return logs, err
}

// FindByClearance 查找某份申请的全部审计日志
func (r *auditLogRepository) FindByClearance(clearanceID string) ([]*model.AuditLogModel, error) {
	var logs []*model.AuditLogModel
	err := r.db.Where("resource_type = ? AND resource_id = ?", "clearance", clearanceID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

// FindRecent 查找最近的审计日志
func (r *auditLogRepository) FindRecent(limit int) ([]*model.AuditLogModel, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []*model.AuditLogModel
	err := r.db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
