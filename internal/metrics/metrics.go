package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	// API 请求计数器
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// API 请求响应时间
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 申请创建数
	applicationsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clearance_applications_created_total",
			Help: "Total number of clearance applications created",
		},
	)

	// 审批决定数(按角色和决定)
	decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clearance_decisions_total",
			Help: "Total number of authority decisions",
		},
		[]string{"role", "decision"},
	)

	// 证书签发数
	certificatesGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clearance_certificates_generated_total",
			Help: "Total number of clearance certificates generated",
		},
	)

	// 申请状态分布
	clearancesByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "clearances_by_status",
			Help: "Number of clearance applications by overall status",
		},
		[]string{"status"},
	)

	// 数据库连接数
	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

var once sync.Once

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(applicationsCreatedTotal)
	prometheus.MustRegister(decisionsTotal)
	prometheus.MustRegister(certificatesGeneratedTotal)
	prometheus.MustRegister(clearancesByStatus)
	prometheus.MustRegister(databaseConnectionsActive)
	prometheus.MustRegister(databaseConnectionsIdle)

	// 注册 Go 运行时指标(只注册一次,已注册则忽略错误)
	once.Do(func() {
		_ = prometheus.Register(prometheus.NewGoCollector())
		_ = prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	})
}

// Handler 返回 Prometheus 指标处理器
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest 记录 API 请求
func RecordAPIRequest(method, path string, status int, duration float64) {
	statusText := http.StatusText(status)
	if statusText == "" {
		statusText = fmt.Sprintf("%d", status)
	}
	apiRequestsTotal.WithLabelValues(method, path, statusText).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordApplicationCreated 记录申请创建
func RecordApplicationCreated() {
	applicationsCreatedTotal.Inc()
}

// RecordDecision 记录审批决定
func RecordDecision(role, decision string) {
	decisionsTotal.WithLabelValues(role, decision).Inc()
}

// RecordCertificateGenerated 记录证书签发
func RecordCertificateGenerated() {
	certificatesGeneratedTotal.Inc()
}

// SetClearancesByStatus 更新申请状态分布
func SetClearancesByStatus(status string, count float64) {
	clearancesByStatus.WithLabelValues(status).Set(count)
}

// UpdateDatabaseMetrics 更新数据库连接指标
func UpdateDatabaseMetrics(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.InUse))
	databaseConnectionsIdle.Set(float64(stats.Idle))
}
