package service

import (
	"context"

	"github.com/d60-Lab/tastegraph/internal/model"
	"github.com/d60-Lab/tastegraph/internal/repository"
	"github.com/d60-Lab/tastegraph/pkg/apperr"
)

// NotificationService 通知读路径;写入只发生在事件消费者
type NotificationService interface {
	ListByUser(ctx context.Context, userID int64) ([]NotificationDTO, error)
	ListUnread(ctx context.Context, userID int64) ([]NotificationDTO, error)
	MarkRead(ctx context.Context, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

type notificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
}

func NewNotificationService(notifications repository.NotificationRepository, users repository.UserRepository) NotificationService {
	return &notificationService{notifications: notifications, users: users}
}

func (s *notificationService) ListByUser(ctx context.Context, userID int64) ([]NotificationDTO, error) {
	rows, err := s.notifications.ListByReceiver(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toNotificationDTOs(rows), nil
}

func (s *notificationService) ListUnread(ctx context.Context, userID int64) ([]NotificationDTO, error) {
	rows, err := s.notifications.ListUnreadByReceiver(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toNotificationDTOs(rows), nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID int64) error {
	updated, err := s.notifications.MarkRead(ctx, notificationID)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.NotFound("notification %d not found", notificationID)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user %d not found", userID)
	}
	return s.notifications.MarkAllRead(ctx, userID)
}

func toNotificationDTOs(rows []model.Notification) []NotificationDTO {
	res := make([]NotificationDTO, 0, len(rows))
	for i := range rows {
		n := &rows[i]
		dto := NotificationDTO{
			ID:          n.ID,
			SenderID:    n.SenderID,
			ReceiverID:  n.ReceiverID,
			Type:        n.Type,
			Message:     n.Message,
			ReferenceID: n.ReferenceID,
			IsRead:      n.IsRead,
			CreatedAt:   n.CreatedAt,
		}
		if n.Sender != nil {
			dto.SenderUsername = n.Sender.Username
		}
		res = append(res, dto)
	}
	return res
}
