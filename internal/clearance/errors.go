package clearance

import "errors"

// 核心错误分类
// 每个错误都是类型化结果,调用方通过 errors.Is 判断并映射到对应的 HTTP 状态码
var (
	// ErrValidation 输入不合法(例如提前离校申请缺少理由)
	ErrValidation = errors.New("validation error")

	// ErrNotFound 申请不存在
	ErrNotFound = errors.New("clearance application not found")

	// ErrUnauthorized 操作者角色与目标审批槽位不匹配
	ErrUnauthorized = errors.New("actor role does not match the targeted authority slot")

	// ErrScopeMismatch 越过了院系/学院边界
	ErrScopeMismatch = errors.New("actor scope does not cover this student")

	// ErrActiveApplicationExists 学生已有活跃的申请
	ErrActiveApplicationExists = errors.New("student already has an active clearance application")

	// ErrAlreadyDecided 该角色的审批槽位已有决定,不允许重复审批
	ErrAlreadyDecided = errors.New("this authority has already decided on the application")

	// ErrSystemDisabled 清单系统被管理员停用
	// 核心状态机不抛出此错误,由调用层在 EligibilityGate 关闭时返回
	ErrSystemDisabled = errors.New("the clearance system is currently deactivated")

	// ErrNotCompleted 申请尚未完成,不满足证书条件
	ErrNotCompleted = errors.New("clearance application is not completed")

	// ErrVersionConflict 并发写入导致版本冲突,由存储层返回
	ErrVersionConflict = errors.New("application was modified concurrently")
)
