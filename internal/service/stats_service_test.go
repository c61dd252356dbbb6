package service

import (
	"context"
	"testing"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/model"
	"github.com/bernaba123/Clearance/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStatsService(db *gorm.DB) StatsService {
	return NewStatsService(
		repository.NewClearanceRepository(db),
		repository.NewUserRepository(db),
		repository.NewApprovalRecordStatsRepository(db),
	)
}

// seedAdmin 写入一个审批账号
func seedAdmin(t *testing.T, db *gorm.DB, id, role string) {
	userRepo := repository.NewUserRepository(db)
	require.NoError(t, userRepo.Save(&model.UserModel{
		ID:       id,
		FullName: "Officer " + id,
		Email:    id + "@university.edu",
		Role:     role,
		IsActive: true,
	}))
}

// TestStatsService_PublicStats 测试公开统计聚合
func TestStatsService_PublicStats(t *testing.T) {
	db := setupServiceTestDB(t)
	svc, _, _ := newTestClearanceService(t, db)
	statsSvc := newTestStatsService(db)
	ctx := context.Background()

	seedStudent(t, db, "stu-001", "Software Engineering", "engineering")
	seedStudent(t, db, "stu-002", "Software Engineering", "engineering")
	seedAdmin(t, db, "lib-001", clearance.RoleChiefLibrarian.String())
	seedAdmin(t, db, "admin-001", model.RoleSystemAdmin)

	// stu-001 完成全部审批,stu-002 还在处理中
	app1, err := svc.Apply(ctx, "stu-001", &ApplyRequest{AgreeToTerms: true})
	require.NoError(t, err)
	approveAll(t, svc, app1.ID)
	_, err = svc.Apply(ctx, "stu-002", &ApplyRequest{AgreeToTerms: true})
	require.NoError(t, err)

	stats, err := statsSvc.PublicStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalStudents)
	assert.Equal(t, int64(1), stats.PendingClearances)
	assert.Equal(t, int64(1), stats.CompletedClearances)
	assert.Equal(t, int64(2), stats.ActiveAdmins)
}

// TestStatsService_OfficeStats 测试审批角色工作台统计
func TestStatsService_OfficeStats(t *testing.T) {
	db := setupServiceTestDB(t)
	svc, _, _ := newTestClearanceService(t, db)
	statsSvc := newTestStatsService(db)
	ctx := context.Background()

	seedStudent(t, db, "stu-001", "Software Engineering", "engineering")
	seedStudent(t, db, "stu-002", "Software Engineering", "engineering")

	app1, err := svc.Apply(ctx, "stu-001", &ApplyRequest{AgreeToTerms: true})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, "stu-002", &ApplyRequest{AgreeToTerms: true})
	require.NoError(t, err)

	// 馆长批准 stu-001,stu-002 仍待办
	_, err = svc.Review(ctx, app1.ID, &ReviewRequest{
		Role:     clearance.RoleChiefLibrarian.String(),
		Decision: "approved",
		Actor:    actorFor(clearance.RoleChiefLibrarian),
	})
	require.NoError(t, err)

	stats, err := statsSvc.OfficeStats(ctx, clearance.RoleChiefLibrarian)
	require.NoError(t, err)
	assert.Equal(t, clearance.RoleChiefLibrarian.String(), stats.Role)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Approved)
	assert.Equal(t, int64(0), stats.Rejected)
}
