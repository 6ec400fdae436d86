package model

import (
	"time"
)

// Folder 文件夹表，支持父子层级
type Folder struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"type:varchar(128);not null" json:"name"`
	ParentID  *int64    `gorm:"index" json:"parent_id"` // NULL 表示根目录
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Folder) TableName() string {
	return "folder"
}

// Document 文档元数据表
// 文件内容存放在外部对象存储，这里只记录 storage_key 和展示信息
type Document struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"index;not null" json:"user_id"`
	Name       string    `gorm:"type:varchar(256);not null" json:"name"`
	Type       string    `gorm:"type:varchar(64);index;not null" json:"type"`
	Size       int64     `gorm:"not null;default:0" json:"size"`
	StorageKey string    `gorm:"type:varchar(256);not null" json:"storage_key"`
	FolderID   *int64    `gorm:"index" json:"folder_id"`
	Tags       string    `gorm:"type:varchar(512)" json:"tags"` // 逗号分隔
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Document) TableName() string {
	return "document"
}
