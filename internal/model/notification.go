package model

import "time"

// 通知类型
const (
	NotificationTypeFollow  = "FOLLOW"
	NotificationTypeMessage = "MESSAGE"
	NotificationTypeLike    = "LIKE"
	NotificationTypeComment = "COMMENT"
)

// Notification 用户侧通知,只由 notification 消费者写入
type Notification struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	SenderID    int64  `gorm:"not null" json:"sender_id"`
	ReceiverID  int64  `gorm:"index:idx_notification_receiver;not null" json:"receiver_id"`
	Type        string `gorm:"type:varchar(32);not null" json:"type"`
	Message     string `gorm:"type:varchar(256)" json:"message"`
	ReferenceID int64  `json:"reference_id"`
	IsRead      bool   `gorm:"not null;default:false" json:"is_read"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
