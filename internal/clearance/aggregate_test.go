package clearance

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// makeRecords 构造指定决定分布的记录集合
func makeRecords(approved, rejected int) []ApprovalRecord {
	roles := RequiredRoles()
	records := make([]ApprovalRecord, 0, len(roles))
	for i, role := range roles {
		decision := DecisionPending
		if i < approved {
			decision = DecisionApproved
		} else if i < approved+rejected {
			decision = DecisionRejected
		}
		records = append(records, ApprovalRecord{Role: role, Decision: decision})
	}
	return records
}

// TestAggregate_AllPending 全部未决时整体状态为 pending
func TestAggregate_AllPending(t *testing.T) {
	assert.Equal(t, StatusPending, Aggregate(makeRecords(0, 0)))
}

// TestAggregate_PartialApproved 部分同意时整体状态为 in_progress
func TestAggregate_PartialApproved(t *testing.T) {
	assert.Equal(t, StatusInProgress, Aggregate(makeRecords(1, 0)))
	// 7 个同意 1 个未决仍然是 in_progress
	assert.Equal(t, StatusInProgress, Aggregate(makeRecords(7, 0)))
}

// TestAggregate_AllApproved 全部同意时整体状态为 completed
func TestAggregate_AllApproved(t *testing.T) {
	assert.Equal(t, StatusCompleted, Aggregate(makeRecords(8, 0)))
}

// TestAggregate_RejectionDominates 任意一条拒绝即整体拒绝
func TestAggregate_RejectionDominates(t *testing.T) {
	// 7 个同意 + 1 个拒绝 ⇒ rejected
	assert.Equal(t, StatusRejected, Aggregate(makeRecords(7, 1)))
	assert.Equal(t, StatusRejected, Aggregate(makeRecords(0, 1)))
	assert.Equal(t, StatusRejected, Aggregate(makeRecords(3, 2)))
}

// TestAggregate_OrderIndependent 聚合结果对记录顺序不敏感
func TestAggregate_OrderIndependent(t *testing.T) {
	cases := [][]ApprovalRecord{
		makeRecords(0, 0),
		makeRecords(1, 0),
		makeRecords(7, 0),
		makeRecords(8, 0),
		makeRecords(7, 1),
		makeRecords(2, 3),
	}

	rng := rand.New(rand.NewSource(42))
	for _, records := range cases {
		want := Aggregate(records)
		for i := 0; i < 50; i++ {
			shuffled := make([]ApprovalRecord, len(records))
			copy(shuffled, records)
			rng.Shuffle(len(shuffled), func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})
			assert.Equal(t, want, Aggregate(shuffled))
		}
	}
}

// TestAggregate_Empty 空集合按 pending 处理
func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, StatusPending, Aggregate(nil))
}
