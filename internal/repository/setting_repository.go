package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/bernaba123/Clearance/internal/model"
	"gorm.io/gorm"
)

// SettingRepository 系统设置仓储接口
// 同时实现 clearance.FlagStore,为 EligibilityGate 提供开关读取
type SettingRepository interface {
	GetBool(ctx context.Context, key string, defaultValue bool) (bool, error)
	SetBool(ctx context.Context, key string, value bool, updatedBy, description string) error
	FindAll(ctx context.Context) ([]*model.SystemSettingModel, error)
}

// settingRepository 系统设置仓储实现
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository 创建系统设置仓储
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// GetBool 读取布尔开关,键不存在时返回默认值
func (r *settingRepository) GetBool(ctx context.Context, key string, defaultValue bool) (bool, error) {
	var setting model.SystemSettingModel
	err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultValue, nil
	}
	if err != nil {
		return defaultValue, err
	}
	value, err := strconv.ParseBool(setting.Value)
	if err != nil {
		return defaultValue, err
	}
	return value, nil
}

// SetBool 写入布尔开关(不存在则创建)
func (r *settingRepository) SetBool(ctx context.Context, key string, value bool, updatedBy, description string) error {
	now := time.Now()
	setting := model.SystemSettingModel{
		Key:         key,
		Value:       strconv.FormatBool(value),
		Description: description,
		UpdatedBy:   updatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := setting.Validate(); err != nil {
		return err
	}

	var existing model.SystemSettingModel
	err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(&setting).Error
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.SystemSettingModel{}).
		Where("setting_key = ?", key).
		Updates(map[string]interface{}{
			"setting_value": setting.Value,
			"description":   description,
			"updated_by":    updatedBy,
			"updated_at":    now,
		}).Error
}

// FindAll 查找全部系统设置
func (r *settingRepository) FindAll(ctx context.Context) ([]*model.SystemSettingModel, error) {
	var settings []*model.SystemSettingModel
	err := r.db.WithContext(ctx).Order("setting_key ASC").Find(&settings).Error
	return settings, err
}
