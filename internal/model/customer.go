package model

import (
	"time"
)

// Customer 客户表
// balance 是欠款余额的简单累计：销售欠款时增加，补缴收款时减少，
// 明细不单独建账，靠销售单和交易流水还原
type Customer struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"type:varchar(128);not null" json:"name"`
	Email     string    `gorm:"type:varchar(128)" json:"email"`
	Phone     string    `gorm:"type:varchar(32)" json:"phone"`
	Address   string    `gorm:"type:varchar(256)" json:"address"`
	Notes     string    `gorm:"type:varchar(512)" json:"notes"`
	Balance   float64   `gorm:"not null;default:0" json:"balance"` // 未结欠款
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customer"
}
