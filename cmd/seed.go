/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/config"
	"github.com/bernaba123/Clearance/internal/database"
	"github.com/bernaba123/Clearance/internal/model"
	"github.com/bernaba123/Clearance/internal/repository"
	"github.com/bernaba123/Clearance/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// seedAccount 种子账号描述
type seedAccount struct {
	FullName   string
	Email      string
	Role       string
	Department string
	College    string
	Office     string
}

// 默认的管理与审批账号
// 密码通过 --password 标志统一指定,首次登录后应立即修改
var seedAccounts = []seedAccount{
	{FullName: "System Administrator", Email: "admin@university.edu", Role: model.RoleSystemAdmin, Office: "ICT Directorate"},
	{FullName: "Chief Librarian", Email: "librarian@university.edu", Role: clearance.RoleChiefLibrarian.String(), Office: "University Library"},
	{FullName: "Dormitory Proctor", Email: "proctor@university.edu", Role: clearance.RoleDormitoryProctor.String(), Office: "Dormitory Service"},
	{FullName: "Dining Officer", Email: "dining@university.edu", Role: clearance.RoleDiningOfficer.String(), Office: "Dining Service"},
	{FullName: "Student Affairs Dean", Email: "affairs@university.edu", Role: clearance.RoleStudentAffairs.String(), Office: "Student Affairs"},
	{FullName: "Student Discipline Officer", Email: "discipline@university.edu", Role: clearance.RoleStudentDiscipline.String(), Office: "Student Discipline"},
	{FullName: "Cost Sharing Officer", Email: "costsharing@university.edu", Role: clearance.RoleCostSharing.String(), Office: "Cost Sharing"},
	{FullName: "Head, Software Engineering", Email: "head.software@university.edu", Role: clearance.RoleDepartmentHead.String(), Department: "Software Engineering", Office: "Department Office"},
	{FullName: "Registrar, College of Engineering", Email: "registrar.engineering@university.edu", Role: clearance.RoleRegistrarAdmin.String(), College: "engineering", Office: "Registrar Office"},
}

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed default accounts and settings",
	Long: `Seed the database with the default administrative accounts and
system settings. One account is created per reviewing authority plus a
system administrator. Existing accounts are left untouched, so the
command is safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			return errors.New("--password is required")
		}

		// 2. 连接数据库并迁移
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		defer func() {
			sqlDB, _ := db.DB()
			if sqlDB != nil {
				sqlDB.Close()
			}
		}()
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		ctx := context.Background()

		// 3. 写入账号
		if err := seedUsers(db, password); err != nil {
			return err
		}

		// 4. 写入默认系统开关
		settingRepo := repository.NewSettingRepository(db)
		for key, description := range map[string]string{
			clearance.SettingClearanceSystemActive: "Controls whether students can submit and view clearance applications",
			clearance.SettingRegistrationActive:    "Controls whether new accounts can be registered",
		} {
			current, err := settingRepo.GetBool(ctx, key, true)
			if err != nil {
				return fmt.Errorf("failed to read setting %s: %w", key, err)
			}
			if err := settingRepo.SetBool(ctx, key, current, "seed", description); err != nil {
				return fmt.Errorf("failed to seed setting %s: %w", key, err)
			}
		}

		log.Println("Seeding completed successfully!")
		return nil
	},
}

// seedUsers 写入默认账号,已存在的邮箱跳过
func seedUsers(db *gorm.DB, password string) error {
	userRepo := repository.NewUserRepository(db)

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	for _, account := range seedAccounts {
		existing, err := userRepo.FindByEmail(account.Email)
		if err == nil && existing != nil {
			log.Printf("Account %s already exists, skipping", account.Email)
			continue
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up %s: %w", account.Email, err)
		}

		now := time.Now()
		user := &model.UserModel{
			ID:           uuid.NewString(),
			FullName:     account.FullName,
			Email:        account.Email,
			PasswordHash: hash,
			Role:         account.Role,
			Department:   account.Department,
			College:      account.College,
			Office:       account.Office,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Save(user); err != nil {
			return fmt.Errorf("failed to seed %s: %w", account.Email, err)
		}
		log.Printf("Seeded account %s (%s)", account.Email, account.Role)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("config", "", "Config file path (default: search in current directory, ./config, or $HOME/.clearance-gin)")
	seedCmd.Flags().String("password", "", "Initial password for all seeded accounts")
}
