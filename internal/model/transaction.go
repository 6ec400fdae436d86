package model

import (
	"time"
)

// BusinessTransaction 业务交易流水表
// 每笔销售活动对应一条流水，冗余商品名、客户名等展示字段，
// 是客户对账单和报表的直接数据来源
type BusinessTransaction struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionNo string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"transaction_no"` // 流水号（全局唯一）
	SaleID        int64     `gorm:"index;not null" json:"sale_id"`
	UserID        int64     `gorm:"index;not null" json:"user_id"`
	ProductName   string    `gorm:"type:varchar(128);not null" json:"product_name"`
	ClientName    string    `gorm:"type:varchar(128);not null" json:"client_name"`
	BoxesQuantity float64   `gorm:"not null;default:0" json:"boxes_quantity"`
	KgQuantity    float64   `gorm:"not null;default:0" json:"kg_quantity"`
	TotalAmount   float64   `gorm:"not null" json:"total_amount"`
	PaymentStatus string    `gorm:"type:varchar(20);index;not null" json:"payment_status"`
	PaymentMethod string    `gorm:"type:varchar(32);not null" json:"payment_method"`
	UpdatedBy     int64     `gorm:"not null" json:"updated_by"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BusinessTransaction) TableName() string {
	return "business_transaction"
}
