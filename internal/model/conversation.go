package model

import "time"

// Conversation 两人会话,互关或首次私信时惰性创建
// 同一对用户至多一个会话(创建前先查)
type Conversation struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Participants []User    `gorm:"many2many:conversation_participants" json:"participants,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Conversation) TableName() string { return "conversations" }

// Message 会话消息,正文不可变,已读集只增
type Message struct {
	ID             int64  `gorm:"primaryKey" json:"id"`
	ConversationID int64  `gorm:"index:idx_message_conversation;not null" json:"conversation_id"`
	SenderID       int64  `gorm:"not null" json:"sender_id"`
	Body           string `gorm:"type:text" json:"body"`

	Sender *User         `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Reads  []MessageRead `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"-"`

	SentAt time.Time `gorm:"index" json:"sent_at"`
}

func (Message) TableName() string { return "messages" }

// MessageRead 已读记录,(message_id, user_id) 唯一
type MessageRead struct {
	MessageID int64 `gorm:"primaryKey;autoIncrement:false"`
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (MessageRead) TableName() string { return "message_reads" }

// ReadBy 返回已读用户 ID 列表
func (m *Message) ReadBy() []int64 {
	ids := make([]int64, 0, len(m.Reads))
	for _, r := range m.Reads {
		ids = append(ids, r.UserID)
	}
	return ids
}

// IsReadBy 判断 userID 是否已读
func (m *Message) IsReadBy(userID int64) bool {
	for _, r := range m.Reads {
		if r.UserID == userID {
			return true
		}
	}
	return false
}
