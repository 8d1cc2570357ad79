package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/tastegraph/internal/model"
)

type ConversationRepository interface {
	WithTx(tx *gorm.DB) ConversationRepository
	// FindBetween 查两个用户之间的私聊会话;不存在返回 (nil, nil)
	FindBetween(ctx context.Context, userA, userB int64) (*model.Conversation, error)
	// CreateBetween 建会话并挂两个参与者
	CreateBetween(ctx context.Context, a, b *model.User) (*model.Conversation, error)
	FindByID(ctx context.Context, id int64) (*model.Conversation, error)
	// ListByUser 某用户参与的全部会话,预载参与者
	ListByUser(ctx context.Context, userID int64) ([]model.Conversation, error)
}

type conversationRepository struct{ db *gorm.DB }

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) WithTx(tx *gorm.DB) ConversationRepository {
	return &conversationRepository{db: tx}
}

func (r *conversationRepository) FindBetween(ctx context.Context, userA, userB int64) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_participants pa ON pa.conversation_id = conversations.id AND pa.user_id = ?", userA).
		Joins("JOIN conversation_participants pb ON pb.conversation_id = conversations.id AND pb.user_id = ?", userB).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) CreateBetween(ctx context.Context, a, b *model.User) (*model.Conversation, error) {
	conv := &model.Conversation{Participants: []model.User{*a, *b}}
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

func (r *conversationRepository) FindByID(ctx context.Context, id int64) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.WithContext(ctx).Preload("Participants").First(&conv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Joins("JOIN conversation_participants p ON p.conversation_id = conversations.id AND p.user_id = ?", userID).
		Find(&convs).Error
	return convs, err
}
