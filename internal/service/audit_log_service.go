package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bernaba123/Clearance/internal/model"
	"github.com/bernaba123/Clearance/internal/repository"
	"github.com/google/uuid"
)

// AuditLogService 审计日志服务
type AuditLogService interface {
	RecordAction(ctx context.Context, userID string, action string, resourceType string, resourceID string, details interface{}) error
}

// auditLogService 审计日志服务实现
type auditLogService struct {
	auditRepo repository.AuditLogRepository
}

// NewAuditLogService 创建审计日志服务
func NewAuditLogService(auditRepo repository.AuditLogRepository) AuditLogService {
	return &auditLogService{auditRepo: auditRepo}
}

// RecordAction 记录操作审计日志
func (s *auditLogService) RecordAction(
	ctx context.Context,
	userID string,
	action string,
	resourceType string,
	resourceID string,
	details interface{},
) error {
	if s.auditRepo == nil {
		return nil
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return err
	}

	// 请求元信息由请求日志中间件写入 context
	requestID, _ := ctx.Value("request_id").(string)
	ip, _ := ctx.Value("ip").(string)
	userAgent, _ := ctx.Value("user_agent").(string)

	log := &model.AuditLogModel{
		ID:           uuid.NewString(),
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		RequestID:    requestID,
		IP:           ip,
		UserAgent:    userAgent,
		Details:      detailsJSON,
		CreatedAt:    time.Now(),
	}
	return s.auditRepo.Save(log)
}
