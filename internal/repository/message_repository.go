package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/tastegraph/internal/model"
)

type MessageRepository interface {
	WithTx(tx *gorm.DB) MessageRepository
	Create(ctx context.Context, m *model.Message) error
	// ListByConversation 按发送时间升序,预载发送者与已读集
	ListByConversation(ctx context.Context, conversationID int64) ([]model.Message, error)
	// LastMessage 会话最新一条;没有消息返回 (nil, nil)
	LastMessage(ctx context.Context, conversationID int64) (*model.Message, error)
	// CountUnread 对 userID 未读且非其本人发送的消息数
	CountUnread(ctx context.Context, conversationID, userID int64) (int64, error)
	// MarkRead 把 userID 加入会话内所有消息的已读集,幂等
	MarkRead(ctx context.Context, conversationID, userID int64) error
}

type messageRepository struct{ db *gorm.DB }

func NewMessageRepository(db *gorm.DB) MessageRepository { return &messageRepository{db: db} }

func (r *messageRepository) WithTx(tx *gorm.DB) MessageRepository { return &messageRepository{db: tx} }

func (r *messageRepository) Create(ctx context.Context, m *model.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID int64) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Reads").
		Where("conversation_id = ?", conversationID).
		Order("sent_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}

func (r *messageRepository) LastMessage(ctx context.Context, conversationID int64) (*model.Message, error) {
	var m model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at DESC, id DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, conversationID, userID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("conversation_id = ? AND sender_id <> ?", conversationID, userID).
		Where("NOT EXISTS (SELECT 1 FROM message_reads mr WHERE mr.message_id = messages.id AND mr.user_id = ?)", userID).
		Count(&cnt).Error
	return cnt, err
}

func (r *messageRepository) MarkRead(ctx context.Context, conversationID, userID int64) error {
	// INSERT..SELECT + ON CONFLICT DO NOTHING,sqlite/postgres 通用
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO message_reads (message_id, user_id)
		SELECT m.id, ? FROM messages m WHERE m.conversation_id = ?
		ON CONFLICT DO NOTHING
	`, userID, conversationID).Error
}
