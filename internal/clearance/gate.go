package clearance

import "context"

// 系统开关键名
const (
	SettingClearanceSystemActive = "clearanceSystemActive"
	SettingRegistrationActive    = "registrationActive"
)

// FlagStore 系统开关存储接口
// 由设置仓储实现,键不存在时返回默认值
type FlagStore interface {
	GetBool(ctx context.Context, key string, defaultValue bool) (bool, error)
}

// EligibilityGate 资格闸门
// 两个相互独立的开关: clearanceSystemActive 控制学生的提交与查询,
// registrationActive 控制账号注册。闸门由调用层消费,不参与状态机转换
type EligibilityGate struct {
	flags FlagStore
}

// NewEligibilityGate 创建资格闸门
func NewEligibilityGate(flags FlagStore) *EligibilityGate {
	return &EligibilityGate{flags: flags}
}

// ClearanceSystemActive 清单系统是否开放
// 开关存储不可用时按开放处理(fail-open),保持可用性
func (g *EligibilityGate) ClearanceSystemActive(ctx context.Context) bool {
	active, err := g.flags.GetBool(ctx, SettingClearanceSystemActive, true)
	if err != nil {
		return true
	}
	return active
}

// RegistrationActive 注册系统是否开放
func (g *EligibilityGate) RegistrationActive(ctx context.Context) bool {
	active, err := g.flags.GetBool(ctx, SettingRegistrationActive, true)
	if err != nil {
		return true
	}
	return active
}
