package model

import (
	"time"
)

// ExpenseCategory 支出分类表
// 同一用户下分类名唯一；被支出引用时不允许删除
type ExpenseCategory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index:idx_category_user_name,unique;not null" json:"user_id"`
	Name      string    `gorm:"type:varchar(64);index:idx_category_user_name,unique;not null" json:"name"`
	Budget    *float64  `json:"budget"` // 月度预算，可不设
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ExpenseCategory) TableName() string {
	return "expense_category"
}

// Expense 支出表
type Expense struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64     `gorm:"index;not null" json:"user_id"`
	CategoryID    int64     `gorm:"index;not null" json:"category_id"`
	Description   string    `gorm:"type:varchar(256);not null" json:"description"`
	Amount        float64   `gorm:"not null" json:"amount"`
	PaymentMethod string    `gorm:"type:varchar(32);not null" json:"payment_method"`
	ReceiptURL    string    `gorm:"type:varchar(512)" json:"receipt_url"` // 票据，存储在外部文件服务
	Notes         string    `gorm:"type:varchar(512)" json:"notes"`
	SpentAt       time.Time `gorm:"index;not null" json:"spent_at"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Expense) TableName() string {
	return "expense"
}
