package websocket

import (
	"encoding/json"
	"time"

	"github.com/bernaba123/Clearance/internal/clearance"
)

// StatusMessage 状态推送消息
type StatusMessage struct {
	Type        string                     `json:"type"`                   // 固定为 clearance_status
	ClearanceID string                     `json:"clearance_id"`           // 申请 ID
	Status      string                     `json:"status"`                 // 整体状态
	Approvals   []clearance.ApprovalRecord `json:"approvals"`              // 8 条审批记录
	CompletedAt *time.Time                 `json:"completed_at,omitempty"` // 完成时间
	SentAt      time.Time                  `json:"sent_at"`                // 推送时间
}

// StatusNotifier 基于 Hub 的状态推送器
// 实现 service.StatusNotifier,审批决定落库后向申请人定向推送最新状态
type StatusNotifier struct {
	hub *Hub
}

// NewStatusNotifier 创建状态推送器
func NewStatusNotifier(hub *Hub) *StatusNotifier {
	return &StatusNotifier{hub: hub}
}

// NotifyStatus 推送申请最新状态
// 序列化失败或无在线连接时静默放弃,推送不影响审批结果
func (n *StatusNotifier) NotifyStatus(app *clearance.Application) {
	if n == nil || n.hub == nil || app == nil {
		return
	}

	msg := StatusMessage{
		Type:        "clearance_status",
		ClearanceID: app.ID,
		Status:      app.Status.String(),
		Approvals:   app.Records,
		CompletedAt: app.CompletedAt,
		SentAt:      time.Now(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	n.hub.BroadcastToUser(app.StudentID, payload)
}
