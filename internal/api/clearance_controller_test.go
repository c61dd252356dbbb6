package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bernaba123/Clearance/internal/api"
	"github.com/bernaba123/Clearance/internal/auth"
	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/model"
	"github.com/bernaba123/Clearance/internal/repository"
	"github.com/bernaba123/Clearance/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupControllerTestDB 创建控制器测试数据库
func setupControllerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.UserModel{},
		&model.ClearanceModel{},
		&model.ApprovalRecordModel{},
		&model.SystemSettingModel{},
		&model.AuditLogModel{},
	)
	require.NoError(t, err)

	return db
}

// controllerFixture 控制器测试装配
type controllerFixture struct {
	db           *gorm.DB
	clearanceSvc service.ClearanceService
	certSvc      service.CertificateService
	controller   *api.ClearanceController
}

func newControllerFixture(t *testing.T) *controllerFixture {
	gin.SetMode(gin.TestMode)
	db := setupControllerTestDB(t)

	repo := repository.NewClearanceRepository(db)
	directory := repository.NewStudentDirectory(db)
	processor := clearance.NewReviewProcessor(repo, directory, nil)
	clearanceSvc := service.NewClearanceService(processor, repo, nil, nil)
	certSvc := service.NewCertificateService(repo, repository.NewUserRepository(db), nil)

	return &controllerFixture{
		db:           db,
		clearanceSvc: clearanceSvc,
		certSvc:      certSvc,
		controller:   api.NewClearanceController(clearanceSvc, certSvc),
	}
}

// seedStudent 写入测试学生
func (f *controllerFixture) seedStudent(t *testing.T, id string) {
	userRepo := repository.NewUserRepository(f.db)
	require.NoError(t, userRepo.Save(&model.UserModel{
		ID:         id,
		FullName:   "Test Student",
		Email:      id + "@student.edu",
		Role:       model.RoleStudent,
		StudentID:  "ETS-" + id,
		Department: "Software Engineering",
		College:    "engineering",
		YearLevel:  5,
		IsActive:   true,
	}))
}

// identity 模拟认证中间件写入的身份信息
func identity(userID, role, department, college string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, userID)
		c.Set(auth.ContextKeyUserName, "Test User")
		c.Set(auth.ContextKeyUserRole, role)
		c.Set(auth.ContextKeyDepartment, department)
		c.Set(auth.ContextKeyCollege, college)
		c.Next()
	}
}

// TestClearanceController_Apply 测试提交申请接口
func TestClearanceController_Apply(t *testing.T) {
	f := newControllerFixture(t)
	f.seedStudent(t, "stu-001")

	router := gin.New()
	router.POST("/api/v1/clearance/apply", identity("stu-001", model.RoleStudent, "", ""), f.controller.Apply)

	body, _ := json.Marshal(service.ApplyRequest{AgreeToTerms: true})
	req := httptest.NewRequest("POST", "/api/v1/clearance/apply", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response api.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 0, response.Code)

	// 重复提交返回 409
	req = httptest.NewRequest("POST", "/api/v1/clearance/apply", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

// TestClearanceController_ApplyMissingTerms 测试缺少条款同意返回 400
func TestClearanceController_ApplyMissingTerms(t *testing.T) {
	f := newControllerFixture(t)
	f.seedStudent(t, "stu-001")

	router := gin.New()
	router.POST("/api/v1/clearance/apply", identity("stu-001", model.RoleStudent, "", ""), f.controller.Apply)

	req := httptest.NewRequest("POST", "/api/v1/clearance/apply", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestClearanceController_Status 测试查询申请状态接口
func TestClearanceController_Status(t *testing.T) {
	f := newControllerFixture(t)
	f.seedStudent(t, "stu-001")

	router := gin.New()
	router.POST("/api/v1/clearance/apply", identity("stu-001", model.RoleStudent, "", ""), f.controller.Apply)
	router.GET("/api/v1/clearance/status", identity("stu-001", model.RoleStudent, "", ""), f.controller.Status)

	// 没有申请时返回 404
	req := httptest.NewRequest("GET", "/api/v1/clearance/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	body, _ := json.Marshal(service.ApplyRequest{AgreeToTerms: true})
	req = httptest.NewRequest("POST", "/api/v1/clearance/apply", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/clearance/status", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data struct {
			Status    string                     `json:"status"`
			Approvals []clearance.ApprovalRecord `json:"approvals"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "pending", response.Data.Status)
	assert.Len(t, response.Data.Approvals, clearance.RequiredRoleCount)
}

// TestClearanceController_Review 测试审批接口与错误映射
func TestClearanceController_Review(t *testing.T) {
	f := newControllerFixture(t)
	f.seedStudent(t, "stu-001")
	ctx := context.Background()

	app, err := f.clearanceSvc.Apply(ctx, "stu-001", &service.ApplyRequest{AgreeToTerms: true})
	require.NoError(t, err)

	librarian := identity("lib-001", clearance.RoleChiefLibrarian.String(), "", "")
	router := gin.New()
	router.POST("/api/v1/clearance/:id/review", librarian, f.controller.Review)

	body, _ := json.Marshal(map[string]string{
		"role":     clearance.RoleChiefLibrarian.String(),
		"decision": "approved",
		"comment":  "no pending books",
	})
	req := httptest.NewRequest("POST", "/api/v1/clearance/"+app.ID+"/review", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// 同一槽位的第二次决定返回 409
	req = httptest.NewRequest("POST", "/api/v1/clearance/"+app.ID+"/review", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	// 角色与目标槽位不符返回 403
	mismatch, _ := json.Marshal(map[string]string{
		"role":     clearance.RoleDiningOfficer.String(),
		"decision": "approved",
	})
	req = httptest.NewRequest("POST", "/api/v1/clearance/"+app.ID+"/review", bytes.NewBuffer(mismatch))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 不存在的申请返回 404
	req = httptest.NewRequest("POST", "/api/v1/clearance/missing/review", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestClearanceController_Certificate 测试证书下载接口
func TestClearanceController_Certificate(t *testing.T) {
	f := newControllerFixture(t)
	f.seedStudent(t, "stu-001")
	ctx := context.Background()

	app, err := f.clearanceSvc.Apply(ctx, "stu-001", &service.ApplyRequest{AgreeToTerms: true})
	require.NoError(t, err)

	router := gin.New()
	router.GET("/api/v1/clearance/certificate", identity("stu-001", model.RoleStudent, "", ""), f.controller.Certificate)

	// 未完成时返回 409
	req := httptest.NewRequest("GET", "/api/v1/clearance/certificate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	for _, role := range clearance.RequiredRoles() {
		_, err := f.clearanceSvc.Review(ctx, app.ID, &service.ReviewRequest{
			Role:     role.String(),
			Decision: "approved",
			Actor: clearance.Actor{
				ID:         "off-" + role.String(),
				Role:       role,
				Department: "Software Engineering",
				College:    "engineering",
			},
		})
		require.NoError(t, err)
	}

	req = httptest.NewRequest("GET", "/api/v1/clearance/certificate", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}
