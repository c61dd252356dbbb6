package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClearanceRepository 离校申请仓储接口
// 在 clearance.Store 之上补充查询类方法供控制台/统计使用
type ClearanceRepository interface {
	clearance.Store
	FindAll(ctx context.Context) ([]*clearance.Application, error)
	FindByStatus(ctx context.Context, status clearance.OverallStatus) ([]*clearance.Application, error)
	CountByStatus(ctx context.Context, statuses ...clearance.OverallStatus) (int64, error)
}

// clearanceRepository 离校申请仓储实现
type clearanceRepository struct {
	db *gorm.DB
}

// NewClearanceRepository 创建离校申请仓储
func NewClearanceRepository(db *gorm.DB) ClearanceRepository {
	return &clearanceRepository{db: db}
}

// FindByID 根据 ID 查找申请(含全部审批记录)
func (r *clearanceRepository) FindByID(ctx context.Context, id string) (*clearance.Application, error) {
	var cm model.ClearanceModel
	err := r.db.WithContext(ctx).Preload("Records").Where("id = ?", id).First(&cm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cm.ToDomain()
}

// FindActiveByStudent 查找学生的活跃申请(pending/in_progress)
func (r *clearanceRepository) FindActiveByStudent(ctx context.Context, studentID string) (*clearance.Application, error) {
	var cm model.ClearanceModel
	err := r.db.WithContext(ctx).Preload("Records").
		Where("student_id = ? AND status IN ?", studentID,
			[]string{clearance.StatusPending.String(), clearance.StatusInProgress.String()}).
		Order("created_at DESC").
		First(&cm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cm.ToDomain()
}

// FindLatestByStudent 查找学生最近一份申请
func (r *clearanceRepository) FindLatestByStudent(ctx context.Context, studentID string) (*clearance.Application, error) {
	var cm model.ClearanceModel
	err := r.db.WithContext(ctx).Preload("Records").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		First(&cm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cm.ToDomain()
}

// Save 保存申请
// 已存在的申请通过版本号做乐观锁校验,冲突时整个事务回滚并返回 ErrVersionConflict;
// 成功后回写递增的版本号,保证"写入决定 + 重算状态"要么全部生效要么零变更
func (r *clearanceRepository) Save(ctx context.Context, app *clearance.Application) error {
	cm := model.ClearanceFromDomain(app)
	if err := cm.Validate(); err != nil {
		return err
	}

	updated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.ClearanceModel
		err := tx.Where("id = ?", cm.ID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return r.insert(tx, cm)
		case err != nil:
			return err
		default:
			updated = true
			return r.update(tx, cm)
		}
	})
	if err != nil {
		return err
	}

	// 首次写入落库的就是内存中的版本号,只有更新路径递增
	if updated {
		app.Version++
	}
	return nil
}

// insert 首次写入申请及 8 条审批记录
func (r *clearanceRepository) insert(tx *gorm.DB, cm *model.ClearanceModel) error {
	for i := range cm.Records {
		cm.Records[i].ID = uuid.NewString()
		cm.Records[i].CreatedAt = cm.CreatedAt
		cm.Records[i].UpdatedAt = cm.CreatedAt
	}
	return tx.Create(cm).Error
}

// update 带版本校验的更新
func (r *clearanceRepository) update(tx *gorm.DB, cm *model.ClearanceModel) error {
	result := tx.Model(&model.ClearanceModel{}).
		Where("id = ? AND version = ?", cm.ID, cm.Version).
		Updates(map[string]interface{}{
			"status":             cm.Status,
			"completed_at":       cm.CompletedAt,
			"certificate_issued": cm.CertificateIssued,
			"version":            cm.Version + 1,
			"updated_at":         cm.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return clearance.ErrVersionConflict
	}

	// 记录行按 (clearance_id, role) 定位更新,行集合本身创建后不增不减
	for i := range cm.Records {
		rm := &cm.Records[i]
		if err := tx.Model(&model.ApprovalRecordModel{}).
			Where("clearance_id = ? AND role = ?", rm.ClearanceID, rm.Role).
			Updates(map[string]interface{}{
				"decision":   rm.Decision,
				"decided_by": rm.DecidedBy,
				"decided_at": rm.DecidedAt,
				"comment":    rm.Comment,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindAll 查找全部申请(含审批记录),按创建时间倒序
func (r *clearanceRepository) FindAll(ctx context.Context) ([]*clearance.Application, error) {
	var models []model.ClearanceModel
	err := r.db.WithContext(ctx).Preload("Records").Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(models)
}

// FindByStatus 按整体状态查找申请
func (r *clearanceRepository) FindByStatus(ctx context.Context, status clearance.OverallStatus) ([]*clearance.Application, error) {
	var models []model.ClearanceModel
	err := r.db.WithContext(ctx).Preload("Records").
		Where("status = ?", status.String()).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(models)
}

// CountByStatus 统计指定状态的申请数量
func (r *clearanceRepository) CountByStatus(ctx context.Context, statuses ...clearance.OverallStatus) (int64, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, s.String())
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ClearanceModel{}).
		Where("status IN ?", values).
		Count(&count).Error
	return count, err
}

func toDomainList(models []model.ClearanceModel) ([]*clearance.Application, error) {
	apps := make([]*clearance.Application, 0, len(models))
	for i := range models {
		app, err := models[i].ToDomain()
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}
