package model

import "time"

// Outbox 状态
const (
	OutboxStatusPending    = "pending"
	OutboxStatusProcessing = "processing"
	OutboxStatusDone       = "done"
)

// Outbox 事件外发盒,与业务写同事务落地,由 dispatcher 异步投递
type Outbox struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	Topic       string    `gorm:"type:varchar(32);index;not null"`
	Payload     []byte    `gorm:"type:text;not null"`
	Status      string    `gorm:"type:varchar(16);index"` // pending, processing, done
	Attempts    int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"index"`
	ProcessedAt *time.Time
}

func (Outbox) TableName() string { return "outbox" }

// AllModels 迁移用的全量模型列表
func AllModels() []any {
	return []any{
		&User{}, &UserDietaryPreference{}, &UserBadge{}, &UserStats{},
		&Follow{}, &Conversation{}, &Message{}, &MessageRead{},
		&Notification{}, &Interaction{}, &Save{}, &Outbox{},
	}
}
