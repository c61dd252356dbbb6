package repository

import (
	"context"
	"errors"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/model"
	"gorm.io/gorm"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	Save(user *model.UserModel) error
	FindByID(id string) (*model.UserModel, error)
	FindByEmail(email string) (*model.UserModel, error)
	CountStudents() (int64, error)
	CountActiveAdmins() (int64, error)
}

// userRepository 用户仓储实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Save 保存用户
func (r *userRepository) Save(user *model.UserModel) error {
	if err := user.Validate(); err != nil {
		return err
	}
	return r.db.Save(user).Error
}

// FindByID 根据 ID 查找用户
func (r *userRepository) FindByID(id string) (*model.UserModel, error) {
	var user model.UserModel
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(email string) (*model.UserModel, error) {
	var user model.UserModel
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CountStudents 统计在册学生数量
func (r *userRepository) CountStudents() (int64, error) {
	var count int64
	err := r.db.Model(&model.UserModel{}).
		Where("role = ? AND is_active = ?", model.RoleStudent, true).
		Count(&count).Error
	return count, err
}

// CountActiveAdmins 统计活跃的管理类账号数量
func (r *userRepository) CountActiveAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&model.UserModel{}).
		Where("role <> ? AND is_active = ?", model.RoleStudent, true).
		Count(&count).Error
	return count, err
}

// StudentDirectory 基于用户表的学生目录
// 为审批矩阵的作用域检查提供学生的院系/学院信息
type StudentDirectory struct {
	db *gorm.DB
}

// NewStudentDirectory 创建学生目录
func NewStudentDirectory(db *gorm.DB) *StudentDirectory {
	return &StudentDirectory{db: db}
}

// Lookup 查询学生作用域信息
func (d *StudentDirectory) Lookup(ctx context.Context, studentID string) (clearance.StudentRecord, error) {
	var user model.UserModel
	err := d.db.WithContext(ctx).Where("id = ? AND role = ?", studentID, model.RoleStudent).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return clearance.StudentRecord{}, clearance.ErrNotFound
	}
	if err != nil {
		return clearance.StudentRecord{}, err
	}
	return clearance.StudentRecord{
		ID:         user.ID,
		Department: user.Department,
		College:    user.College,
	}, nil
}
