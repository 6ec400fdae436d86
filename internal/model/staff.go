package model

import (
	"time"
)

// Staff 员工表
// 登录凭证由外部认证服务管理，这里只保存联系方式和证件资料
type Staff struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StaffNo        string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"staff_no"`
	UserID         int64     `gorm:"index;not null" json:"user_id"`
	FullName       string    `gorm:"type:varchar(128);not null" json:"full_name"`
	Email          string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"email"`
	PhoneNumber    string    `gorm:"type:varchar(32)" json:"phone_number"`
	IDCardFrontURL string    `gorm:"type:varchar(512)" json:"id_card_front_url"`
	IDCardBackURL  string    `gorm:"type:varchar(512)" json:"id_card_back_url"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Staff) TableName() string {
	return "staff"
}
