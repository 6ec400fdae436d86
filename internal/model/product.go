package model

import (
	"time"
)

// Product 商品（库存）表
// 库存分箱、公斤两个维度，销售单创建时扣减，审批通过的数量修改也会影响
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"index;not null" json:"user_id"`
	Name        string    `gorm:"type:varchar(128);not null" json:"name"`
	SKU         string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"sku"`
	Category    string    `gorm:"type:varchar(64);index" json:"category"`
	Description string    `gorm:"type:varchar(512)" json:"description"`
	QuantityBox float64   `gorm:"not null;default:0" json:"quantity_box"`
	QuantityKg  float64   `gorm:"not null;default:0" json:"quantity_kg"`
	CostPerBox  float64   `gorm:"not null;default:0" json:"cost_per_box"`
	CostPerKg   float64   `gorm:"not null;default:0" json:"cost_per_kg"`
	PricePerBox float64   `gorm:"not null;default:0" json:"price_per_box"`
	PricePerKg  float64   `gorm:"not null;default:0" json:"price_per_kg"`
	MinStockBox float64   `gorm:"not null;default:0" json:"min_stock_box"` // 低库存告警阈值（按箱）
	ImageURL    string    `gorm:"type:varchar(512)" json:"image_url"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "product"
}

// IsLowStock 是否触发低库存告警
func (p *Product) IsLowStock() bool {
	return p.IsActive && p.QuantityBox <= p.MinStockBox
}
