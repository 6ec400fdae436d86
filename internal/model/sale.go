package model

import (
	"time"
)

const (
	PaymentStatusPending   = "pending"   // 未收款
	PaymentStatusPartial   = "partial"   // 部分收款
	PaymentStatusCompleted = "completed" // 已结清
)

// ResolvePaymentStatus 根据已收金额与总额推导收款状态
func ResolvePaymentStatus(amountPaid, totalAmount float64) string {
	switch {
	case amountPaid >= totalAmount:
		return PaymentStatusCompleted
	case amountPaid > 0:
		return PaymentStatusPartial
	default:
		return PaymentStatusPending
	}
}

// Sale 销售单表
// 记录一笔销售的数量、金额与收款进度
//
// 【重要】金额不变式：amount_paid + remaining_amount == total_amount
// 该不变式不由数据库约束保证，由 SaleService 的写入逻辑维护
type Sale struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleNo          string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"sale_no"` // 销售单号（全局唯一）
	UserID          int64     `gorm:"index;not null" json:"user_id"`                        // 归属用户（店主）
	ProductID       int64     `gorm:"index;not null" json:"product_id"`
	BoxesQuantity   float64   `gorm:"not null" json:"boxes_quantity"` // 按箱数量
	KgQuantity      float64   `gorm:"not null" json:"kg_quantity"`    // 按公斤数量
	BoxPrice        float64   `gorm:"not null" json:"box_price"`
	KgPrice         float64   `gorm:"not null" json:"kg_price"`
	ProfitPerBox    float64   `gorm:"not null;default:0" json:"profit_per_box"`
	ProfitPerKg     float64   `gorm:"not null;default:0" json:"profit_per_kg"`
	TotalAmount     float64   `gorm:"not null" json:"total_amount"`
	AmountPaid      float64   `gorm:"not null;default:0" json:"amount_paid"`
	RemainingAmount float64   `gorm:"not null;default:0" json:"remaining_amount"`
	PaymentStatus   string    `gorm:"type:varchar(20);index;not null" json:"payment_status"`
	PaymentMethod   string    `gorm:"type:varchar(32);not null" json:"payment_method"`
	CustomerID      int64     `gorm:"index" json:"customer_id"` // 0 表示散客，不挂欠款
	ClientName      string    `gorm:"type:varchar(128);not null" json:"client_name"`
	PhoneNumber     string    `gorm:"type:varchar(32)" json:"phone_number"`
	Notes           string    `gorm:"type:varchar(512)" json:"notes"`
	PerformedBy     int64     `gorm:"not null" json:"performed_by"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Sale) TableName() string {
	return "sale"
}
