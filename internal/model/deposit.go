package model

import (
	"time"
)

// Deposit 存款/缴款记录表
type Deposit struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DepositNo       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"deposit_no"`
	UserID          int64     `gorm:"index;not null" json:"user_id"`
	DepositType     string    `gorm:"type:varchar(32);not null" json:"deposit_type"`
	AccountName     string    `gorm:"type:varchar(128);not null" json:"account_name"`
	AccountNumber   string    `gorm:"type:varchar(64);not null" json:"account_number"`
	Amount          float64   `gorm:"not null" json:"amount"`
	ToRecipient     string    `gorm:"type:varchar(128);not null" json:"to_recipient"`
	DepositImageURL string    `gorm:"type:varchar(512)" json:"deposit_image_url"` // 凭证图片，存储在外部文件服务
	Approval        string    `gorm:"type:varchar(20);not null" json:"approval"`
	CreatedBy       int64     `gorm:"not null" json:"created_by"`
	UpdatedBy       int64     `gorm:"not null" json:"updated_by"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Deposit) TableName() string {
	return "deposit"
}
