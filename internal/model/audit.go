package model

import (
	"time"
)

// ============================================================================
// 销售审核（变更审批）
// ============================================================================
//
// 销售单一旦录入，数量、收款方式的修改和删除都不允许直接生效：
// 先以审核记录的形式落库（pending），审批通过后才把变更应用到销售单。
// 审核记录本身是永久日志，进入终态后不再修改、不删除。

const (
	AuditTypeQuantityChange      = "quantity_change"       // 数量修改
	AuditTypePaymentMethodChange = "payment_method_change" // 收款方式修改
	AuditTypeDeletion            = "deletion"              // 删除销售单
	AuditTypeEdit                = "edit"                  // 未指定具体字段的编辑，仅留痕，不回写销售单
)

const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)

// validApprovalTransitions 审批状态机
// pending 是唯一非终态；approved / rejected 都是终态，不允许再转移
var validApprovalTransitions = map[string][]string{
	ApprovalStatusPending: {ApprovalStatusApproved, ApprovalStatusRejected},
}

func CanTransitionApproval(currentStatus, targetStatus string) bool {
	allowedStatuses, exists := validApprovalTransitions[currentStatus]
	if !exists {
		return false
	}
	for _, s := range allowedStatuses {
		if s == targetStatus {
			return true
		}
	}
	return false
}

// SalesAudit 销售审核表
//
// 【重要】审核表设计原则：
// 1. 只追加，终态后不修改，永不删除 —— 保证审计可追溯
// 2. 同时保存结构化前后值（boxes/kg/payment_method 各自独立列）和完整快照（JSON）
// 3. 一条审核记录只指向一张销售单；一张销售单可以有多条审核记录
type SalesAudit struct {
	ID                  int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	AuditNo             string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"audit_no"` // 审核单号（全局唯一）
	UserID              int64      `gorm:"index;not null" json:"user_id"`                         // 归属用户
	SaleID              int64      `gorm:"index;not null" json:"sale_id"`                         // 目标销售单
	AuditType           string     `gorm:"type:varchar(32);not null" json:"audit_type"`
	BoxesBefore         float64    `gorm:"not null;default:0" json:"boxes_before"`
	BoxesAfter          *float64   `json:"boxes_after"` // deletion 审核无目标值
	KgBefore            float64    `gorm:"not null;default:0" json:"kg_before"`
	KgAfter             *float64   `json:"kg_after"`
	PaymentMethodBefore string     `gorm:"type:varchar(32)" json:"payment_method_before"`
	PaymentMethodAfter  *string    `gorm:"type:varchar(32)" json:"payment_method_after"`
	OldValues           string     `gorm:"type:text;not null" json:"old_values"` // 变更前完整快照（JSON）
	NewValues           *string    `gorm:"type:text" json:"new_values"`          // 变更后目标快照（JSON），deletion 为 NULL
	PerformedBy         int64      `gorm:"not null" json:"performed_by"`         // 发起人
	ApprovalStatus      string     `gorm:"type:varchar(20);index;not null;default:pending" json:"approval_status"`
	ApprovedBy          *int64     `json:"approved_by"` // 审批人，终态时写入
	ApprovedAt          *time.Time `json:"approved_at"`
	ApprovalReason      string     `gorm:"type:varchar(512)" json:"approval_reason"`
	Reason              string     `gorm:"type:varchar(512);not null" json:"reason"` // 发起变更的理由，必填
	CreatedAt           time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SalesAudit) TableName() string {
	return "sales_audit"
}
