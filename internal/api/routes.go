package api

import (
	"github.com/bernaba123/Clearance/internal/auth"
	"github.com/bernaba123/Clearance/internal/config"
	"github.com/bernaba123/Clearance/internal/container"
	"github.com/bernaba123/Clearance/internal/websocket"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/bernaba123/Clearance/docs" // 导入生成的 docs 包
)

// SetupRoutes 配置路由
func SetupRoutes(cfg *config.Config, ct *container.Container) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// 全局中间件
	router.Use(HTTPSRedirectMiddlewareWithConfig(config.IsProduction(cfg)))
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(cfg.CORS))
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(ErrorHandlerMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	if cfg.Tracing.Enabled {
		router.Use(TracingMiddleware())
	}

	// 健康检查
	healthController := NewHealthController(ct.DB())
	router.GET("/health", healthController.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	// WebSocket 状态订阅
	router.GET("/ws/clearance", websocket.StatusHandler(ct.Hub(), ct.TokenValidator()))

	// Swagger UI 路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("http://localhost:8080/swagger/doc.json"), // Swagger JSON URL
	))

	// 控制器
	clearanceController := NewClearanceController(ct.ClearanceService(), ct.CertificateService())
	adminController := NewAdminController(ct.ClearanceService(), ct.SettingService(), ct.StatsService())
	newsController := NewNewsController(ct.NewsService())
	statsController := NewStatsController(ct.StatsService())

	// API v1 路由组
	v1 := router.Group("/api/v1")
	{
		// 公开路由
		v1.GET("/stats", statsController.Public)
		v1.GET("/news", newsController.List)
		v1.GET("/news/:id", newsController.Get)

		// 学生路由
		// 学生侧受系统开关控制,开关关闭时统一返回 503
		student := v1.Group("/clearance")
		student.Use(auth.AuthMiddleware(ct.TokenValidator()))
		student.Use(auth.RequireStudent())
		student.Use(SystemGateMiddleware(ct.SettingService().Gate()))
		{
			student.POST("/apply", clearanceController.Apply)
			student.GET("/status", clearanceController.Status)
			student.GET("/certificate", clearanceController.Certificate)
		}

		// 审批路由
		office := v1.Group("")
		office.Use(auth.AuthMiddleware(ct.TokenValidator()))
		office.Use(auth.RequireAuthority())
		{
			office.POST("/clearance/:id/review", clearanceController.Review)
			office.GET("/office/stats", adminController.OfficeStats)
		}

		// 管理路由
		admin := v1.Group("/admin")
		admin.Use(auth.AuthMiddleware(ct.TokenValidator()))
		admin.Use(auth.RequireSystemAdmin())
		{
			admin.GET("/system-status", adminController.SystemStatus)
			admin.PUT("/settings/clearance-system", adminController.ToggleClearanceSystem)
			admin.PUT("/settings/registration", adminController.ToggleRegistration)
			admin.GET("/clearances", adminController.ListClearances)
			admin.POST("/news", newsController.Create)
			admin.PUT("/news/:id", newsController.Update)
			admin.DELETE("/news/:id", newsController.Delete)
		}
	}

	return router
}
