package service

import (
	"context"
	"testing"

	"github.com/bernaba123/Clearance/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSettingService_Defaults 测试默认全部开放
func TestSettingService_Defaults(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewSettingService(repository.NewSettingRepository(db), nil)

	status := svc.GetSystemStatus(context.Background())
	assert.True(t, status.ClearanceSystemActive)
	assert.True(t, status.RegistrationActive)
}

// TestSettingService_ToggleIndependently 测试两个开关相互独立
func TestSettingService_ToggleIndependently(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewSettingService(repository.NewSettingRepository(db), NewAuditLogService(repository.NewAuditLogRepository(db)))
	ctx := context.Background()

	require.NoError(t, svc.SetClearanceSystemActive(ctx, false, "admin-001"))

	status := svc.GetSystemStatus(ctx)
	assert.False(t, status.ClearanceSystemActive)
	assert.True(t, status.RegistrationActive)

	require.NoError(t, svc.SetRegistrationActive(ctx, false, "admin-001"))
	require.NoError(t, svc.SetClearanceSystemActive(ctx, true, "admin-001"))

	status = svc.GetSystemStatus(ctx)
	assert.True(t, status.ClearanceSystemActive)
	assert.False(t, status.RegistrationActive)
}

// TestSettingService_ToggleAudited 测试开关变更写入审计日志
func TestSettingService_ToggleAudited(t *testing.T) {
	db := setupServiceTestDB(t)
	auditRepo := repository.NewAuditLogRepository(db)
	svc := NewSettingService(repository.NewSettingRepository(db), NewAuditLogService(auditRepo))
	ctx := context.Background()

	require.NoError(t, svc.SetClearanceSystemActive(ctx, false, "admin-001"))

	logs, err := auditRepo.FindByUserID("admin-001")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "update_setting", logs[0].Action)
	assert.Equal(t, "setting", logs[0].ResourceType)
}
