package clearance

// Aggregate 由审批记录集合推导整体状态
// 纯函数,对记录顺序不敏感:
//   - 任意一条 rejected → rejected(单个角色拒绝即终止整个流程)
//   - 全部 approved → completed
//   - 至少一条 approved → in_progress
//   - 其余(全部 pending)→ pending
func Aggregate(records []ApprovalRecord) OverallStatus {
	approved := 0
	for i := range records {
		switch records[i].Decision {
		case DecisionRejected:
			return StatusRejected
		case DecisionApproved:
			approved++
		}
	}
	if len(records) > 0 && approved == len(records) {
		return StatusCompleted
	}
	if approved > 0 {
		return StatusInProgress
	}
	return StatusPending
}
