package repository

import (
	"context"
	"testing"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSettingRepository_GetBoolDefault 测试键不存在时返回默认值
func TestSettingRepository_GetBoolDefault(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingRepository(db)
	ctx := context.Background()

	value, err := repo.GetBool(ctx, clearance.SettingClearanceSystemActive, true)
	require.NoError(t, err)
	assert.True(t, value)

	value, err = repo.GetBool(ctx, clearance.SettingClearanceSystemActive, false)
	require.NoError(t, err)
	assert.False(t, value)
}

// TestSettingRepository_SetBoolUpsert 测试开关的写入与覆盖
func TestSettingRepository_SetBoolUpsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SetBool(ctx, clearance.SettingRegistrationActive, false, "admin-001", "registration toggle"))

	value, err := repo.GetBool(ctx, clearance.SettingRegistrationActive, true)
	require.NoError(t, err)
	assert.False(t, value)

	// 覆盖写入
	require.NoError(t, repo.SetBool(ctx, clearance.SettingRegistrationActive, true, "admin-002", "registration toggle"))
	value, err = repo.GetBool(ctx, clearance.SettingRegistrationActive, false)
	require.NoError(t, err)
	assert.True(t, value)

	settings, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "admin-002", settings[0].UpdatedBy)
}

// TestSettingRepository_GateIntegration 测试仓储驱动的资格闸门
func TestSettingRepository_GateIntegration(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingRepository(db)
	gate := clearance.NewEligibilityGate(repo)
	ctx := context.Background()

	// 未配置时按开放处理
	assert.True(t, gate.ClearanceSystemActive(ctx))
	assert.True(t, gate.RegistrationActive(ctx))

	require.NoError(t, repo.SetBool(ctx, clearance.SettingClearanceSystemActive, false, "admin-001", ""))
	assert.False(t, gate.ClearanceSystemActive(ctx))

	// 两个开关相互独立
	assert.True(t, gate.RegistrationActive(ctx))
}
