package clearance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewApplication 新申请持有 8 条 pending 记录,整体状态为 pending
func TestNewApplication(t *testing.T) {
	app, err := NewApplication("stu-001", false, "", "dorm keys returned")
	require.NoError(t, err)

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, "stu-001", app.StudentID)
	assert.Equal(t, StatusPending, app.Status)
	assert.Len(t, app.Records, RequiredRoleCount)
	assert.Nil(t, app.CompletedAt)
	assert.False(t, app.CertificateIssued)

	// 每个必需角色恰好一条记录,初始均为 pending
	for _, role := range RequiredRoles() {
		record := app.Record(role)
		require.NotNil(t, record, "missing record for %s", role)
		assert.Equal(t, DecisionPending, record.Decision)
		assert.Empty(t, record.DecidedBy)
		assert.Nil(t, record.DecidedAt)
	}

	require.NoError(t, app.Validate())
}

// TestNewApplication_EarlyReason 提前申请必须给出理由
func TestNewApplication_EarlyReason(t *testing.T) {
	_, err := NewApplication("stu-001", true, "", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewApplication("stu-001", true, "   ", "")
	assert.ErrorIs(t, err, ErrValidation)

	app, err := NewApplication("stu-001", true, "graduating early", "")
	require.NoError(t, err)
	assert.True(t, app.IsEarlyApplication)
	assert.Equal(t, "graduating early", app.EarlyReason)
}

// TestNewApplication_NonEarlyDropsReason 非提前申请不保留理由字段
func TestNewApplication_NonEarlyDropsReason(t *testing.T) {
	app, err := NewApplication("stu-001", false, "should be dropped", "")
	require.NoError(t, err)
	assert.Empty(t, app.EarlyReason)
}

// TestNewApplication_EmptyStudent 学生 ID 不能为空
func TestNewApplication_EmptyStudent(t *testing.T) {
	_, err := NewApplication("", false, "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

// TestRecompute_CompletedAtSetOnce completedAt 只在首次完成时设置一次
func TestRecompute_CompletedAtSetOnce(t *testing.T) {
	app, err := NewApplication("stu-001", false, "", "")
	require.NoError(t, err)

	for i := range app.Records {
		app.Records[i].Decision = DecisionApproved
	}

	first := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	app.Recompute(first)
	require.Equal(t, StatusCompleted, app.Status)
	require.NotNil(t, app.CompletedAt)
	assert.Equal(t, first, *app.CompletedAt)

	// 重复重算不改写 completedAt
	app.Recompute(first.Add(time.Hour))
	assert.Equal(t, first, *app.CompletedAt)
}

// TestMarkCertificateIssued 证书标志只能在 completed 状态下翻转,且幂等
func TestMarkCertificateIssued(t *testing.T) {
	app, err := NewApplication("stu-001", false, "", "")
	require.NoError(t, err)

	assert.ErrorIs(t, app.MarkCertificateIssued(), ErrNotCompleted)
	assert.False(t, app.CertificateIssued)

	for i := range app.Records {
		app.Records[i].Decision = DecisionApproved
	}
	app.Recompute(time.Now())

	require.NoError(t, app.MarkCertificateIssued())
	assert.True(t, app.CertificateIssued)

	// 重复签发保持 true
	require.NoError(t, app.MarkCertificateIssued())
	assert.True(t, app.CertificateIssued)
}

// TestValidate_DuplicateRole 重复角色记录违反不变量
func TestValidate_DuplicateRole(t *testing.T) {
	app, err := NewApplication("stu-001", false, "", "")
	require.NoError(t, err)

	app.Records[1].Role = app.Records[0].Role
	assert.ErrorIs(t, app.Validate(), ErrValidation)
}

// TestValidate_MissingRecord 记录数量不足违反不变量
func TestValidate_MissingRecord(t *testing.T) {
	app, err := NewApplication("stu-001", false, "", "")
	require.NoError(t, err)

	app.Records = app.Records[:7]
	assert.ErrorIs(t, app.Validate(), ErrValidation)
}
