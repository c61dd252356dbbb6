package model

import (
	"errors"
	"time"
)

// 用户角色常量
// student/system_admin 之外的角色与审批矩阵中的 8 个审批角色一一对应
const (
	RoleStudent     = "student"
	RoleSystemAdmin = "system_admin"
)

// UserModel 用户数据模型
// 凭证校验与会话签发属于外部身份系统,本服务只消费其产出的身份声明
type UserModel struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)"`
	FullName     string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"` // bcrypt 哈希,只在种子脚本中写入
	Role         string    `gorm:"type:varchar(32);not null;index"`
	StudentID    string    `gorm:"type:varchar(64);index"` // 学号,仅学生角色
	Department   string    `gorm:"type:varchar(128);index"` // 学生与系主任必填
	College      string    `gorm:"type:varchar(64);index"`  // 学生与注册办管理员必填
	YearLevel    int       `gorm:"type:int"`                // 年级,仅学生角色
	Phone        string    `gorm:"type:varchar(32)"`
	Office       string    `gorm:"type:varchar(128)"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// Validate 验证用户模型
func (um *UserModel) Validate() error {
	if um.ID == "" {
		return errors.New("user ID is required")
	}
	if um.FullName == "" {
		return errors.New("full name is required")
	}
	if um.Email == "" {
		return errors.New("email is required")
	}
	if um.Role == "" {
		return errors.New("role is required")
	}
	if um.Role == RoleStudent {
		if um.StudentID == "" {
			return errors.New("student ID is required for students")
		}
		if um.Department == "" {
			return errors.New("department is required for students")
		}
		if um.College == "" {
			return errors.New("college is required for students")
		}
	}
	if um.Role == "department_head" && um.Department == "" {
		return errors.New("department is required for department heads")
	}
	if um.Role == "registrar_admin" && um.College == "" {
		return errors.New("college is required for registrar admins")
	}
	return nil
}
