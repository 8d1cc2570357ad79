package model

import (
	"time"
)

const FollowStatusActive = "ACTIVE"

// Follow 关注关系(A 关注 B)
type Follow struct {
	ID         int64 `gorm:"primaryKey" json:"id"`
	FollowerID int64 `gorm:"index:idx_follow_follower;index:idx_follow_pair,unique;not null" json:"follower_id"`
	FolloweeID int64 `gorm:"not null;index:idx_follow_followee;index:idx_follow_pair,unique" json:"followee_id"`
	// 复合唯一键,避免重复关注
	// idx_follow_pair = (follower_id, followee_id)
	Status string `gorm:"type:varchar(16);not null;default:ACTIVE" json:"status"`

	Follower *User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee *User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Follow) TableName() string { return "follows" }
