package model

import (
	"errors"
	"time"
)

// SystemSettingModel 系统设置数据模型
// 键值对形式的全局开关,EligibilityGate 从这里读取两个布尔开关
type SystemSettingModel struct {
	Key         string    `gorm:"primaryKey;column:setting_key;type:varchar(64)"`
	Value       string    `gorm:"column:setting_value;type:varchar(255);not null"` // 序列化后的值
	Description string    `gorm:"type:text"`
	UpdatedBy   string    `gorm:"type:varchar(64)"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName 指定表名
func (SystemSettingModel) TableName() string {
	return "system_settings"
}

// Validate 验证系统设置模型
func (sm *SystemSettingModel) Validate() error {
	if sm.Key == "" {
		return errors.New("setting key is required")
	}
	if sm.Value == "" {
		return errors.New("setting value is required")
	}
	return nil
}
