package clearance

import "fmt"

// Actor 审批操作者
// 由身份层(JWT)提供,核心信任该输入,不做凭证校验
type Actor struct {
	ID         string
	Role       AuthorityRole
	Department string // department_head 必填
	College    string // registrar_admin 必填
}

// StudentRecord 被审批学生的作用域信息
type StudentRecord struct {
	ID         string
	Department string
	College    string
}

// ScopeRule 作用域规则
// 判定某个角色的持有者是否可以审批某个学生的申请
type ScopeRule func(actor Actor, student StudentRecord) error

// ApprovalMatrix 角色→作用域规则静态配置表
// department_head 要求院系一致,registrar_admin 要求学院一致,其余 6 个角色全局作用域
type ApprovalMatrix map[AuthorityRole]ScopeRule

// DefaultMatrix 返回默认审批矩阵
func DefaultMatrix() ApprovalMatrix {
	global := func(Actor, StudentRecord) error { return nil }
	return ApprovalMatrix{
		RoleChiefLibrarian:    global,
		RoleDormitoryProctor:  global,
		RoleDiningOfficer:     global,
		RoleStudentAffairs:    global,
		RoleStudentDiscipline: global,
		RoleCostSharing:       global,
		RoleDepartmentHead: func(actor Actor, student StudentRecord) error {
			if actor.Department == "" || actor.Department != student.Department {
				return fmt.Errorf("%w: you can only review clearances for your department", ErrScopeMismatch)
			}
			return nil
		},
		RoleRegistrarAdmin: func(actor Actor, student StudentRecord) error {
			if actor.College == "" || actor.College != student.College {
				return fmt.Errorf("%w: you can only review clearances for your college", ErrScopeMismatch)
			}
			return nil
		},
	}
}

// Authorize 判定操作者是否可以审批目标槽位
// 操作者只能审批与自身角色一致的槽位,再按矩阵检查作用域
func (m ApprovalMatrix) Authorize(actor Actor, student StudentRecord, role AuthorityRole) error {
	if actor.Role != role {
		return fmt.Errorf("%w: actor role %q cannot decide the %q slot", ErrUnauthorized, actor.Role, role)
	}
	rule, ok := m[role]
	if !ok {
		return fmt.Errorf("%w: no scope rule configured for role %q", ErrUnauthorized, role)
	}
	return rule(actor, student)
}
