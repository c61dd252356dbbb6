package clearance

import "fmt"

// AuthorityRole 审批角色
// 离校申请必须由 8 个固定角色分别独立审批,角色集合是封闭枚举,不允许自由字符串
type AuthorityRole string

const (
	RoleChiefLibrarian    AuthorityRole = "chief_librarian"
	RoleDormitoryProctor  AuthorityRole = "dormitory_proctor"
	RoleDiningOfficer     AuthorityRole = "dining_officer"
	RoleStudentAffairs    AuthorityRole = "student_affairs"
	RoleStudentDiscipline AuthorityRole = "student_discipline"
	RoleCostSharing       AuthorityRole = "cost_sharing"
	RoleDepartmentHead    AuthorityRole = "department_head"
	RoleRegistrarAdmin    AuthorityRole = "registrar_admin"
)

// RequiredRoles 返回所有必需的审批角色(按固定顺序)
// 每个申请在创建时为每个角色生成一条审批记录,此后不增不减
func RequiredRoles() []AuthorityRole {
	return []AuthorityRole{
		RoleChiefLibrarian,
		RoleDormitoryProctor,
		RoleDiningOfficer,
		RoleStudentAffairs,
		RoleStudentDiscipline,
		RoleCostSharing,
		RoleDepartmentHead,
		RoleRegistrarAdmin,
	}
}

// RequiredRoleCount 必需审批角色数量
const RequiredRoleCount = 8

// ParseRole 解析审批角色字符串
func ParseRole(s string) (AuthorityRole, error) {
	role := AuthorityRole(s)
	if !role.Valid() {
		return "", fmt.Errorf("%w: unknown authority role %q", ErrValidation, s)
	}
	return role, nil
}

// Valid 判断角色是否属于封闭枚举
func (r AuthorityRole) Valid() bool {
	switch r {
	case RoleChiefLibrarian, RoleDormitoryProctor, RoleDiningOfficer,
		RoleStudentAffairs, RoleStudentDiscipline, RoleCostSharing,
		RoleDepartmentHead, RoleRegistrarAdmin:
		return true
	}
	return false
}

func (r AuthorityRole) String() string {
	return string(r)
}

// Decision 单个角色的审批决定
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// ParseDecision 解析审批决定
// 只接受 approved/rejected 作为提交值,pending 是初始状态不可提交
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionApproved:
		return DecisionApproved, nil
	case DecisionRejected:
		return DecisionRejected, nil
	}
	return "", fmt.Errorf("%w: decision must be approved or rejected, got %q", ErrValidation, s)
}

func (d Decision) String() string {
	return string(d)
}

// OverallStatus 申请整体状态
// 整体状态永远由 8 条审批记录推导得出,不允许独立赋值
type OverallStatus string

const (
	StatusPending    OverallStatus = "pending"
	StatusInProgress OverallStatus = "in_progress"
	StatusCompleted  OverallStatus = "completed"
	StatusRejected   OverallStatus = "rejected"
)

// Terminal 判断状态是否为终态
// completed 和 rejected 之后不再接受任何角色的审批
func (s OverallStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Active 判断状态是否为活跃状态
// 一个学生同一时间最多只能有一份活跃申请
func (s OverallStatus) Active() bool {
	return s == StatusPending || s == StatusInProgress
}

func (s OverallStatus) String() string {
	return string(s)
}
