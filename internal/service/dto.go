package service

import (
	"time"

	"github.com/d60-Lab/tastegraph/internal/model"
)

// FollowUserDTO 关注列表里投影的用户信息
type FollowUserDTO struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	ProfileURL  string `json:"profile_url"`
}

// FollowDTO 关注边,searchType 决定投影哪一侧
type FollowDTO struct {
	ID        int64          `json:"id"`
	Follower  *FollowUserDTO `json:"follower,omitempty"`
	Followee  *FollowUserDTO `json:"followee,omitempty"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

// MessageDTO 消息 + 请求者视角的已读标记
type MessageDTO struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	ReceiverID     int64     `json:"receiver_id,omitempty"`
	Body           string    `json:"body"`
	SentAt         time.Time `json:"sent_at"`
	IsRead         bool      `json:"is_read"`
}

// ConversationPreviewDTO 收件箱预览
type ConversationPreviewDTO struct {
	ConversationID  int64      `json:"conversation_id"`
	OtherUserID     int64      `json:"other_user_id"`
	OtherUserName   string     `json:"other_user_name"`
	LastMessage     string     `json:"last_message"`
	LastMessageTime *time.Time `json:"last_message_time"`
	UnreadCount     int64      `json:"unread_count"`
}

// NotificationDTO 通知
type NotificationDTO struct {
	ID             int64     `json:"id"`
	SenderID       int64     `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
	ReceiverID     int64     `json:"receiver_id"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	ReferenceID    int64     `json:"reference_id"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserDTO 用户公开信息
type UserDTO struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Location    string    `json:"location,omitempty"`
	IsChef      bool      `json:"is_chef"`
	Verified    bool      `json:"verified"`
	ProfileURL  string    `json:"profile_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserProfileDTO 用户 + 计数器
type UserProfileDTO struct {
	UserDTO
	RecipeCount    int `json:"recipe_count"`
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
}

// SaveDTO 收藏记录
type SaveDTO struct {
	ID           int64     `json:"id"`
	ResourceType string    `json:"resource_type"`
	ResourceID   int64     `json:"resource_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Bio:         u.Bio,
		Location:    u.Location,
		IsChef:      u.IsChef,
		Verified:    u.Verified,
		ProfileURL:  u.ProfileURL,
		CreatedAt:   u.CreatedAt,
	}
}

func toFollowUserDTO(u *model.User) *FollowUserDTO {
	if u == nil {
		return nil
	}
	return &FollowUserDTO{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		ProfileURL:  u.ProfileURL,
	}
}
