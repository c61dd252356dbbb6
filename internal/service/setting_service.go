package service

import (
	"context"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/repository"
)

// SystemStatus 系统开关状态
// @Description 两个相互独立的系统级开关
type SystemStatus struct {
	ClearanceSystemActive bool `json:"clearance_system_active"` // 清单系统是否开放
	RegistrationActive    bool `json:"registration_active"`     // 注册是否开放
}

// SettingService 系统设置服务接口
type SettingService interface {
	Gate() *clearance.EligibilityGate
	GetSystemStatus(ctx context.Context) SystemStatus
	SetClearanceSystemActive(ctx context.Context, active bool, updatedBy string) error
	SetRegistrationActive(ctx context.Context, active bool, updatedBy string) error
}

// settingService 系统设置服务实现
type settingService struct {
	settingRepo repository.SettingRepository
	gate        *clearance.EligibilityGate
	auditLogSvc AuditLogService
}

// NewSettingService 创建系统设置服务
func NewSettingService(settingRepo repository.SettingRepository, auditLogSvc AuditLogService) SettingService {
	return &settingService{
		settingRepo: settingRepo,
		gate:        clearance.NewEligibilityGate(settingRepo),
		auditLogSvc: auditLogSvc,
	}
}

// Gate 返回资格闸门
func (s *settingService) Gate() *clearance.EligibilityGate {
	return s.gate
}

// GetSystemStatus 读取两个开关的当前状态
// 开关存储不可用时按全部开放处理(fail-open)
func (s *settingService) GetSystemStatus(ctx context.Context) SystemStatus {
	return SystemStatus{
		ClearanceSystemActive: s.gate.ClearanceSystemActive(ctx),
		RegistrationActive:    s.gate.RegistrationActive(ctx),
	}
}

// SetClearanceSystemActive 切换清单系统开关
func (s *settingService) SetClearanceSystemActive(ctx context.Context, active bool, updatedBy string) error {
	err := s.settingRepo.SetBool(ctx, clearance.SettingClearanceSystemActive, active,
		updatedBy, "Controls whether students can submit and view clearance applications")
	if err != nil {
		return err
	}
	if s.auditLogSvc != nil {
		_ = s.auditLogSvc.RecordAction(ctx, updatedBy, "update_setting", "setting",
			clearance.SettingClearanceSystemActive, map[string]interface{}{"active": active})
	}
	return nil
}

// SetRegistrationActive 切换注册开关
func (s *settingService) SetRegistrationActive(ctx context.Context, active bool, updatedBy string) error {
	err := s.settingRepo.SetBool(ctx, clearance.SettingRegistrationActive, active,
		updatedBy, "Controls whether new accounts can be registered")
	if err != nil {
		return err
	}
	if s.auditLogSvc != nil {
		_ = s.auditLogSvc.RecordAction(ctx, updatedBy, "update_setting", "setting",
			clearance.SettingRegistrationActive, map[string]interface{}{"active": active})
	}
	return nil
}
