package model

import (
	"errors"
	"time"

	"github.com/bernaba123/Clearance/internal/clearance"
)

// ClearanceModel 离校申请数据模型
// 审批记录统一存放在 approval_records 表,每份申请恰好 8 行,每个角色一行
type ClearanceModel struct {
	ID                 string     `gorm:"primaryKey;type:varchar(64)"`
	StudentID          string     `gorm:"type:varchar(64);not null;index"`
	IsEarlyApplication bool       `gorm:"not null;default:false"`
	EarlyReason        string     `gorm:"type:text"`
	AdditionalInfo     string     `gorm:"type:text"`
	Status             string     `gorm:"type:varchar(32);not null;index"` // pending/in_progress/completed/rejected
	CompletedAt        *time.Time `gorm:""`
	CertificateIssued  bool       `gorm:"not null;default:false"`
	Version            int        `gorm:"type:int;not null;default:1"` // 乐观锁版本号
	CreatedAt          time.Time  `gorm:"not null;index"`
	UpdatedAt          time.Time  `gorm:"not null;index"`

	Records []ApprovalRecordModel `gorm:"foreignKey:ClearanceID;references:ID"`
}

// TableName 指定表名
func (ClearanceModel) TableName() string {
	return "clearances"
}

// ApprovalRecordModel 审批记录数据模型
// (clearance_id, role) 唯一,保证每个角色在一份申请上至多一条决定
type ApprovalRecordModel struct {
	ID          string     `gorm:"primaryKey;type:varchar(64)"`
	ClearanceID string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_records_clearance_role,priority:1"`
	Role        string     `gorm:"type:varchar(32);not null;uniqueIndex:idx_records_clearance_role,priority:2"`
	Decision    string     `gorm:"type:varchar(32);not null"` // pending/approved/rejected
	DecidedBy   string     `gorm:"type:varchar(64);index"`
	DecidedAt   *time.Time `gorm:""`
	Comment     string     `gorm:"type:text"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName 指定表名
func (ApprovalRecordModel) TableName() string {
	return "approval_records"
}

// Validate 验证离校申请模型
func (cm *ClearanceModel) Validate() error {
	if cm.ID == "" {
		return errors.New("clearance ID is required")
	}
	if cm.StudentID == "" {
		return errors.New("student ID is required")
	}
	if cm.Status == "" {
		return errors.New("clearance status is required")
	}
	if cm.IsEarlyApplication && cm.EarlyReason == "" {
		return errors.New("early reason is required for early applications")
	}
	return nil
}

// ToDomain 转换为领域聚合
func (cm *ClearanceModel) ToDomain() (*clearance.Application, error) {
	records := make([]clearance.ApprovalRecord, 0, len(cm.Records))
	for i := range cm.Records {
		rm := &cm.Records[i]
		records = append(records, clearance.ApprovalRecord{
			Role:      clearance.AuthorityRole(rm.Role),
			Decision:  clearance.Decision(rm.Decision),
			DecidedBy: rm.DecidedBy,
			DecidedAt: rm.DecidedAt,
			Comment:   rm.Comment,
		})
	}

	app := &clearance.Application{
		ID:                 cm.ID,
		StudentID:          cm.StudentID,
		IsEarlyApplication: cm.IsEarlyApplication,
		EarlyReason:        cm.EarlyReason,
		AdditionalInfo:     cm.AdditionalInfo,
		Status:             clearance.OverallStatus(cm.Status),
		Records:            records,
		CompletedAt:        cm.CompletedAt,
		CertificateIssued:  cm.CertificateIssued,
		Version:            cm.Version,
		CreatedAt:          cm.CreatedAt,
		UpdatedAt:          cm.UpdatedAt,
	}
	if err := app.Validate(); err != nil {
		return nil, err
	}
	return app, nil
}

// ClearanceFromDomain 由领域聚合构造数据模型
// 记录 ID 由仓储层在写入时按 (clearance_id, role) 回填,保持稳定
func ClearanceFromDomain(app *clearance.Application) *ClearanceModel {
	records := make([]ApprovalRecordModel, 0, len(app.Records))
	for i := range app.Records {
		r := &app.Records[i]
		records = append(records, ApprovalRecordModel{
			ClearanceID: app.ID,
			Role:        r.Role.String(),
			Decision:    r.Decision.String(),
			DecidedBy:   r.DecidedBy,
			DecidedAt:   r.DecidedAt,
			Comment:     r.Comment,
		})
	}

	return &ClearanceModel{
		ID:                 app.ID,
		StudentID:          app.StudentID,
		IsEarlyApplication: app.IsEarlyApplication,
		EarlyReason:        app.EarlyReason,
		AdditionalInfo:     app.AdditionalInfo,
		Status:             app.Status.String(),
		CompletedAt:        app.CompletedAt,
		CertificateIssued:  app.CertificateIssued,
		Version:            app.Version,
		CreatedAt:          app.CreatedAt,
		UpdatedAt:          app.UpdatedAt,
		Records:            records,
	}
}
