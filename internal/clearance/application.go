package clearance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ApprovalRecord 单个角色的审批记录
// 每份申请恰好持有 8 条记录,每个角色一条,创建后不增不减
type ApprovalRecord struct {
	Role      AuthorityRole `json:"role"`
	Decision  Decision      `json:"decision"`
	DecidedBy string        `json:"decided_by,omitempty"` // 审批人 ID
	DecidedAt *time.Time    `json:"decided_at,omitempty"` // 审批时间
	Comment   string        `json:"comment,omitempty"`    // 审批意见
}

// Decided 判断该槽位是否已有决定
func (r *ApprovalRecord) Decided() bool {
	return r.Decision != DecisionPending
}

// Application 离校申请聚合
// 状态变更只能通过 ReviewProcessor 进行,整体状态永远由记录集合推导
type Application struct {
	ID                 string           `json:"id"`
	StudentID          string           `json:"student_id"`
	IsEarlyApplication bool             `json:"is_early_application"`
	EarlyReason        string           `json:"early_reason,omitempty"`
	AdditionalInfo     string           `json:"additional_info,omitempty"`
	Status             OverallStatus    `json:"status"`
	Records            []ApprovalRecord `json:"approvals"`
	CompletedAt        *time.Time       `json:"completed_at,omitempty"`
	CertificateIssued  bool             `json:"certificate_issued"`
	Version            int              `json:"version"` // 乐观锁版本号
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// NewApplication 创建离校申请
// 校验提前申请理由,为 8 个必需角色各生成一条 pending 记录
func NewApplication(studentID string, isEarly bool, earlyReason, additionalInfo string) (*Application, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, fmt.Errorf("%w: student ID is required", ErrValidation)
	}
	earlyReason = strings.TrimSpace(earlyReason)
	if isEarly && earlyReason == "" {
		return nil, fmt.Errorf("%w: reason is required for early clearance applications", ErrValidation)
	}
	if !isEarly {
		// 非提前申请不保留理由字段
		earlyReason = ""
	}

	now := time.Now()
	records := make([]ApprovalRecord, 0, RequiredRoleCount)
	for _, role := range RequiredRoles() {
		records = append(records, ApprovalRecord{
			Role:     role,
			Decision: DecisionPending,
		})
	}

	return &Application{
		ID:                 uuid.NewString(),
		StudentID:          studentID,
		IsEarlyApplication: isEarly,
		EarlyReason:        earlyReason,
		AdditionalInfo:     strings.TrimSpace(additionalInfo),
		Status:             StatusPending,
		Records:            records,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// Record 返回指定角色的审批记录
func (a *Application) Record(role AuthorityRole) *ApprovalRecord {
	for i := range a.Records {
		if a.Records[i].Role == role {
			return &a.Records[i]
		}
	}
	return nil
}

// Recompute 依据当前记录集合重新计算整体状态
// 首次进入 completed 时设置 completedAt,此后不再改写
func (a *Application) Recompute(now time.Time) {
	a.Status = Aggregate(a.Records)
	if a.Status == StatusCompleted && a.CompletedAt == nil {
		t := now
		a.CompletedAt = &t
	}
}

// CertificateEligible 判断是否满足证书签发条件
func (a *Application) CertificateEligible() bool {
	return a.Status == StatusCompleted
}

// MarkCertificateIssued 标记证书已签发
// 标志位单调 false→true,且只能在 completed 状态下翻转;重复签发保持 true
func (a *Application) MarkCertificateIssued() error {
	if !a.CertificateEligible() {
		return ErrNotCompleted
	}
	a.CertificateIssued = true
	return nil
}

// Validate 校验聚合不变量
// 存储层读出后调用,保证每个必需角色恰好一条记录
func (a *Application) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: application ID is required", ErrValidation)
	}
	if a.StudentID == "" {
		return fmt.Errorf("%w: student ID is required", ErrValidation)
	}
	if a.IsEarlyApplication && a.EarlyReason == "" {
		return fmt.Errorf("%w: early application is missing its reason", ErrValidation)
	}
	if len(a.Records) != RequiredRoleCount {
		return fmt.Errorf("%w: expected %d approval records, got %d", ErrValidation, RequiredRoleCount, len(a.Records))
	}
	seen := make(map[AuthorityRole]bool, RequiredRoleCount)
	for i := range a.Records {
		role := a.Records[i].Role
		if !role.Valid() {
			return fmt.Errorf("%w: unknown authority role %q", ErrValidation, role)
		}
		if seen[role] {
			return fmt.Errorf("%w: duplicate approval record for role %q", ErrValidation, role)
		}
		seen[role] = true
	}
	return nil
}
