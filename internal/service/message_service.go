package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/tastegraph/internal/event"
	"github.com/d60-Lab/tastegraph/internal/model"
	"github.com/d60-Lab/tastegraph/internal/repository"
	"github.com/d60-Lab/tastegraph/pkg/apperr"
)

// MessageService 私信服务,发消息需要互关
type MessageService interface {
	SendMessage(ctx context.Context, senderID, receiverID int64, body string) (*MessageDTO, error)
	// MessagesBetween 以 requesterID 视角标注已读;没有会话返回 NotFound
	MessagesBetween(ctx context.Context, requesterID, otherID int64) ([]MessageDTO, error)
	// Conversations 收件箱预览,按最新消息时间倒序,空会话排最后
	Conversations(ctx context.Context, userID int64) ([]ConversationPreviewDTO, error)
	MarkRead(ctx context.Context, conversationID, userID int64) error
	// MarkReadWith 按对端用户定位会话后标记已读;会话不存在时静默返回
	MarkReadWith(ctx context.Context, userID, otherID int64) error
}

type messageService struct {
	db            *gorm.DB
	messages      repository.MessageRepository
	conversations repository.ConversationRepository
	users         repository.UserRepository
	outbox        repository.OutboxRepository
	follows       FollowService
}

func NewMessageService(
	db *gorm.DB,
	messages repository.MessageRepository,
	conversations repository.ConversationRepository,
	users repository.UserRepository,
	outbox repository.OutboxRepository,
	follows FollowService,
) MessageService {
	return &messageService{
		db:            db,
		messages:      messages,
		conversations: conversations,
		users:         users,
		outbox:        outbox,
		follows:       follows,
	}
}

// SendMessage 互关门禁 → 找/建会话 → 落消息(发送者默认已读)→ outbox 通知
func (s *messageService) SendMessage(ctx context.Context, senderID, receiverID int64, body string) (*MessageDTO, error) {
	if senderID == receiverID {
		return nil, apperr.Validation("cannot message yourself")
	}
	if body == "" {
		return nil, apperr.Validation("message body is empty")
	}

	mutual, err := s.follows.IsMutual(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !mutual {
		return nil, apperr.Forbidden("you can only message your friends")
	}

	sender, err := s.users.FindByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, apperr.NotFound("sender %d not found", senderID)
	}
	receiver, err := s.users.FindByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, apperr.NotFound("receiver %d not found", receiverID)
	}

	var msg *model.Message
	var convID int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		convRepo := s.conversations.WithTx(tx)
		conv, err := convRepo.FindBetween(ctx, senderID, receiverID)
		if err != nil {
			return err
		}
		if conv == nil {
			// 已互关但从未建会话的旧数据也走这条路补齐
			conv, err = convRepo.CreateBetween(ctx, sender, receiver)
			if err != nil {
				return err
			}
		}
		convID = conv.ID

		msg = &model.Message{
			ConversationID: conv.ID,
			SenderID:       senderID,
			Body:           body,
			SentAt:         time.Now(),
			Reads:          []model.MessageRead{{UserID: senderID}},
		}
		if err := s.messages.WithTx(tx).Create(ctx, msg); err != nil {
			return err
		}

		return s.outbox.WithTx(tx).Append(ctx, event.TopicNotifications, event.NotificationEvent{
			SenderID:    senderID,
			ReceiverID:  receiverID,
			Type:        model.NotificationTypeMessage,
			Message:     fmt.Sprintf("%s sent you a message", sender.Username),
			ReferenceID: conv.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	return &MessageDTO{
		ID:             msg.ID,
		ConversationID: convID,
		SenderID:       senderID,
		SenderName:     sender.Username,
		ReceiverID:     receiverID,
		Body:           msg.Body,
		SentAt:         msg.SentAt,
		IsRead:         false,
	}, nil
}

func (s *messageService) MessagesBetween(ctx context.Context, requesterID, otherID int64) ([]MessageDTO, error) {
	conv, err := s.conversations.FindBetween(ctx, requesterID, otherID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, apperr.NotFound("no conversation between users %d and %d", requesterID, otherID)
	}

	msgs, err := s.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	res := make([]MessageDTO, 0, len(msgs))
	for i := range msgs {
		m := &msgs[i]
		dto := MessageDTO{
			ID:             m.ID,
			ConversationID: conv.ID,
			SenderID:       m.SenderID,
			Body:           m.Body,
			SentAt:         m.SentAt,
			IsRead:         m.IsReadBy(requesterID),
		}
		if m.Sender != nil {
			dto.SenderName = m.Sender.Username
		}
		res = append(res, dto)
	}
	return res, nil
}

func (s *messageService) Conversations(ctx context.Context, userID int64) ([]ConversationPreviewDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", userID)
	}

	convs, err := s.conversations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	previews := make([]ConversationPreviewDTO, 0, len(convs))
	for i := range convs {
		conv := &convs[i]

		var other *model.User
		for j := range conv.Participants {
			if conv.Participants[j].ID != userID {
				other = &conv.Participants[j]
				break
			}
		}
		if other == nil {
			continue
		}

		last, err := s.messages.LastMessage(ctx, conv.ID)
		if err != nil {
			return nil, err
		}
		unread, err := s.messages.CountUnread(ctx, conv.ID, userID)
		if err != nil {
			return nil, err
		}

		p := ConversationPreviewDTO{
			ConversationID: conv.ID,
			OtherUserID:    other.ID,
			OtherUserName:  other.Username,
			UnreadCount:    unread,
		}
		if last != nil {
			p.LastMessage = last.Body
			t := last.SentAt
			p.LastMessageTime = &t
		}
		previews = append(previews, p)
	}

	// 最新消息在前,没有消息的会话排最后
	sort.SliceStable(previews, func(i, j int) bool {
		ti, tj := previews[i].LastMessageTime, previews[j].LastMessageTime
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})
	return previews, nil
}

func (s *messageService) MarkRead(ctx context.Context, conversationID, userID int64) error {
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if conv == nil {
		return apperr.NotFound("conversation %d not found", conversationID)
	}
	return s.messages.MarkRead(ctx, conversationID, userID)
}

func (s *messageService) MarkReadWith(ctx context.Context, userID, otherID int64) error {
	conv, err := s.conversations.FindBetween(ctx, userID, otherID)
	if err != nil {
		return err
	}
	if conv == nil {
		return nil
	}
	return s.messages.MarkRead(ctx, conv.ID, userID)
}
