package container

import (
	"fmt"
	"time"

	"github.com/bernaba123/Clearance/internal/auth"
	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/config"
	"github.com/bernaba123/Clearance/internal/database"
	"github.com/bernaba123/Clearance/internal/repository"
	"github.com/bernaba123/Clearance/internal/service"
	"github.com/bernaba123/Clearance/internal/websocket"
	"gorm.io/gorm"
)

// Container 依赖注入容器
// 管理所有应用依赖,包括数据库、仓储、服务和推送通道
type Container struct {
	db                 *gorm.DB
	clearanceRepo      repository.ClearanceRepository
	userRepo           repository.UserRepository
	settingRepo        repository.SettingRepository
	newsRepo           repository.NewsRepository
	auditRepo          repository.AuditLogRepository
	recordStatsRepo    repository.ApprovalRecordStatsRepository
	processor          *clearance.ReviewProcessor
	clearanceService   service.ClearanceService
	certificateService service.CertificateService
	settingService     service.SettingService
	newsService        service.NewsService
	statsService       service.StatsService
	auditLogService    service.AuditLogService
	tokenValidator     *auth.TokenValidator
	hub                *websocket.Hub
}

// NewContainer 创建依赖注入容器
// 根据配置初始化所有依赖组件
func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. 初始化数据库（带重试机制）
	// 默认重试 3 次，初始间隔 1 秒，指数退避
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// 执行数据库迁移
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return newContainerWithDB(cfg, db), nil
}

// NewContainerWithDB 基于已有数据库连接创建容器
// 供测试和一次性命令(迁移、种子)复用装配逻辑
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) *Container {
	return newContainerWithDB(cfg, db)
}

func newContainerWithDB(cfg *config.Config, db *gorm.DB) *Container {
	// 2. 仓储层
	clearanceRepo := repository.NewClearanceRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	recordStatsRepo := repository.NewApprovalRecordStatsRepository(db)

	// 3. 审批处理器
	// 审批矩阵使用默认的 8 角色作用域规则
	directory := repository.NewStudentDirectory(db)
	processor := clearance.NewReviewProcessor(clearanceRepo, directory, nil)

	// 4. WebSocket Hub 与状态推送器
	hub := websocket.NewHub()
	notifier := websocket.NewStatusNotifier(hub)

	// 5. 服务层
	auditLogService := service.NewAuditLogService(auditRepo)
	clearanceService := service.NewClearanceService(processor, clearanceRepo, auditLogService, notifier)
	certificateService := service.NewCertificateService(clearanceRepo, userRepo, auditLogService)
	settingService := service.NewSettingService(settingRepo, auditLogService)
	newsService := service.NewNewsService(newsRepo)
	statsService := service.NewStatsService(clearanceRepo, userRepo, recordStatsRepo)

	// 6. 令牌验证器
	tokenValidator := auth.NewTokenValidator(cfg.Auth.Issuer, cfg.Auth.Secret)

	return &Container{
		db:                 db,
		clearanceRepo:      clearanceRepo,
		userRepo:           userRepo,
		settingRepo:        settingRepo,
		newsRepo:           newsRepo,
		auditRepo:          auditRepo,
		recordStatsRepo:    recordStatsRepo,
		processor:          processor,
		clearanceService:   clearanceService,
		certificateService: certificateService,
		settingService:     settingService,
		newsService:        newsService,
		statsService:       statsService,
		auditLogService:    auditLogService,
		tokenValidator:     tokenValidator,
		hub:                hub,
	}
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// ClearanceRepository 获取离校申请仓储
func (c *Container) ClearanceRepository() repository.ClearanceRepository {
	return c.clearanceRepo
}

// UserRepository 获取用户仓储
func (c *Container) UserRepository() repository.UserRepository {
	return c.userRepo
}

// SettingRepository 获取系统设置仓储
func (c *Container) SettingRepository() repository.SettingRepository {
	return c.settingRepo
}

// ClearanceService 获取离校申请服务
func (c *Container) ClearanceService() service.ClearanceService {
	return c.clearanceService
}

// CertificateService 获取离校证书服务
func (c *Container) CertificateService() service.CertificateService {
	return c.certificateService
}

// SettingService 获取系统设置服务
func (c *Container) SettingService() service.SettingService {
	return c.settingService
}

// NewsService 获取新闻公告服务
func (c *Container) NewsService() service.NewsService {
	return c.newsService
}

// StatsService 获取统计服务
func (c *Container) StatsService() service.StatsService {
	return c.statsService
}

// AuditLogService 获取审计日志服务
func (c *Container) AuditLogService() service.AuditLogService {
	return c.auditLogService
}

// TokenValidator 获取令牌验证器
func (c *Container) TokenValidator() *auth.TokenValidator {
	return c.tokenValidator
}

// Hub 获取 WebSocket Hub
func (c *Container) Hub() *websocket.Hub {
	return c.hub
}

// Close 关闭容器,清理资源
func (c *Container) Close() error {
	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	return nil
}
