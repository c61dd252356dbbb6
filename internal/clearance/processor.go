package clearance

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Store 申请存储接口
// 由仓储层实现;Save 必须校验版本号,冲突时返回 ErrVersionConflict
type Store interface {
	FindByID(ctx context.Context, id string) (*Application, error)
	FindActiveByStudent(ctx context.Context, studentID string) (*Application, error)
	FindLatestByStudent(ctx context.Context, studentID string) (*Application, error)
	Save(ctx context.Context, app *Application) error
}

// StudentDirectory 学生目录接口
// 提供作用域检查所需的院系/学院信息
type StudentDirectory interface {
	Lookup(ctx context.Context, studentID string) (StudentRecord, error)
}

// ReviewProcessor 审批处理器
// 核心状态机的唯一修改入口:创建申请、查询申请、提交单个角色的审批决定
type ReviewProcessor struct {
	store    Store
	students StudentDirectory
	matrix   ApprovalMatrix
	locks    *keyedMutex
	now      func() time.Time
}

// NewReviewProcessor 创建审批处理器
func NewReviewProcessor(store Store, students StudentDirectory, matrix ApprovalMatrix) *ReviewProcessor {
	if matrix == nil {
		matrix = DefaultMatrix()
	}
	return &ReviewProcessor{
		store:    store,
		students: students,
		matrix:   matrix,
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
}

// CreateApplication 创建离校申请
// 同一学生同一时间最多一份活跃申请(pending/in_progress)
func (p *ReviewProcessor) CreateApplication(ctx context.Context, studentID string, isEarly bool, earlyReason, additionalInfo string) (*Application, error) {
	// 学生级别的临界区,避免并发重复创建
	unlock := p.locks.lock("student:" + studentID)
	defer unlock()

	existing, err := p.store.FindActiveByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrActiveApplicationExists
	}

	app, err := NewApplication(studentID, isEarly, earlyReason, additionalInfo)
	if err != nil {
		return nil, err
	}
	if err := p.store.Save(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// GetApplication 查询学生最近一份申请
func (p *ReviewProcessor) GetApplication(ctx context.Context, studentID string) (*Application, error) {
	app, err := p.store.FindLatestByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}
	return app, nil
}

// SubmitDecision 提交单个角色的审批决定
// 校验顺序: NotFound → Unauthorized → ScopeMismatch → AlreadyDecided → ValidationError
// 成功时写入记录、重算整体状态并原子落库;失败时状态零变更
func (p *ReviewProcessor) SubmitDecision(ctx context.Context, applicationID string, role AuthorityRole, actor Actor, decision Decision, comment string) (*Application, error) {
	// 同一申请的读-改-写串行化,不同申请完全并行
	unlock := p.locks.lock("app:" + applicationID)
	defer unlock()

	app, err := p.store.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}

	student, err := p.students.Lookup(ctx, app.StudentID)
	if err != nil {
		return nil, err
	}
	if err := p.matrix.Authorize(actor, student, role); err != nil {
		return nil, err
	}

	record := app.Record(role)
	if record == nil {
		// Validate 不变量保证不会发生,留作防御性检查
		return nil, fmt.Errorf("%w: no approval slot for role %q", ErrValidation, role)
	}
	if record.Decided() {
		return nil, ErrAlreadyDecided
	}
	if app.Status.Terminal() {
		// 终态后即使未决的槽位也不再接受审批
		return nil, fmt.Errorf("%w: the application workflow has already concluded", ErrAlreadyDecided)
	}

	if decision != DecisionApproved && decision != DecisionRejected {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", ErrValidation)
	}

	now := p.now()
	record.Decision = decision
	record.DecidedBy = actor.ID
	record.DecidedAt = &now
	record.Comment = strings.TrimSpace(comment)
	app.Recompute(now)
	app.UpdatedAt = now

	if err := p.store.Save(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}
