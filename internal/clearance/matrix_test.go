package clearance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAuthorize_RoleMismatch 操作者只能审批与自身角色一致的槽位
func TestAuthorize_RoleMismatch(t *testing.T) {
	matrix := DefaultMatrix()
	actor := Actor{ID: "adm-001", Role: RoleChiefLibrarian}
	student := StudentRecord{ID: "stu-001", Department: "Software Engineering", College: "engineering"}

	err := matrix.Authorize(actor, student, RoleDiningOfficer)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// TestAuthorize_GlobalRoles 六个全局角色可以审批任意学生
func TestAuthorize_GlobalRoles(t *testing.T) {
	matrix := DefaultMatrix()
	student := StudentRecord{ID: "stu-001", Department: "Civil Engineering", College: "engineering"}

	globals := []AuthorityRole{
		RoleChiefLibrarian, RoleDormitoryProctor, RoleDiningOfficer,
		RoleStudentAffairs, RoleStudentDiscipline, RoleCostSharing,
	}
	for _, role := range globals {
		actor := Actor{ID: "adm-001", Role: role}
		assert.NoError(t, matrix.Authorize(actor, student, role), "role %s should be globally scoped", role)
	}
}

// TestAuthorize_DepartmentHeadScope 系主任只能审批本系学生
func TestAuthorize_DepartmentHeadScope(t *testing.T) {
	matrix := DefaultMatrix()
	actor := Actor{ID: "adm-001", Role: RoleDepartmentHead, Department: "Software Engineering"}

	// 跨系审批被拒绝
	err := matrix.Authorize(actor, StudentRecord{ID: "stu-001", Department: "Civil Engineering"}, RoleDepartmentHead)
	assert.ErrorIs(t, err, ErrScopeMismatch)

	// 本系学生允许
	assert.NoError(t, matrix.Authorize(actor, StudentRecord{ID: "stu-002", Department: "Software Engineering"}, RoleDepartmentHead))
}

// TestAuthorize_RegistrarCollegeScope 注册办管理员只能审批本学院学生
func TestAuthorize_RegistrarCollegeScope(t *testing.T) {
	matrix := DefaultMatrix()
	actor := Actor{ID: "adm-001", Role: RoleRegistrarAdmin, College: "engineering"}

	err := matrix.Authorize(actor, StudentRecord{ID: "stu-001", College: "natural_sciences"}, RoleRegistrarAdmin)
	assert.ErrorIs(t, err, ErrScopeMismatch)

	assert.NoError(t, matrix.Authorize(actor, StudentRecord{ID: "stu-002", College: "engineering"}, RoleRegistrarAdmin))
}

// TestAuthorize_EmptyScopeDenied 操作者缺失作用域信息时拒绝
func TestAuthorize_EmptyScopeDenied(t *testing.T) {
	matrix := DefaultMatrix()

	err := matrix.Authorize(
		Actor{ID: "adm-001", Role: RoleDepartmentHead},
		StudentRecord{ID: "stu-001", Department: ""},
		RoleDepartmentHead,
	)
	assert.ErrorIs(t, err, ErrScopeMismatch)
}

// TestParseRole 角色解析只接受封闭枚举
func TestParseRole(t *testing.T) {
	role, err := ParseRole("department_head")
	assert.NoError(t, err)
	assert.Equal(t, RoleDepartmentHead, role)

	_, err = ParseRole("super_admin")
	assert.ErrorIs(t, err, ErrValidation)
}

// TestParseDecision 决定解析只接受 approved/rejected
func TestParseDecision(t *testing.T) {
	decision, err := ParseDecision("approved")
	assert.NoError(t, err)
	assert.Equal(t, DecisionApproved, decision)

	_, err = ParseDecision("pending")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseDecision("maybe")
	assert.ErrorIs(t, err, ErrValidation)
}
