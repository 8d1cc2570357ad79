package model

import "time"

// Save 收藏记录,目标用 (resource_type, resource_id) 表示
// 复合唯一键,同一资源不可重复收藏
// idx_save_triple = (user_id, resource_type, resource_id)
type Save struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	UserID       int64  `gorm:"index:idx_save_user;index:idx_save_triple,unique;not null" json:"user_id"`
	ResourceType string `gorm:"type:varchar(16);index:idx_save_triple,unique;not null" json:"resource_type"`
	ResourceID   int64  `gorm:"index:idx_save_triple,unique;not null" json:"resource_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (Save) TableName() string { return "saves" }
