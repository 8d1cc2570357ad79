package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"

	"github.com/d60-Lab/tastegraph/internal/model"
	"github.com/d60-Lab/tastegraph/internal/repository"
	"github.com/d60-Lab/tastegraph/pkg/logger"
)

// Consumers 两类事件的落库消费者
// 策略差异:interaction 属分析信号,用户缺失时丢弃;
// notification 面向用户,缺失时报错触发重投递
type Consumers struct {
	users         repository.UserRepository
	notifications repository.NotificationRepository
	interactions  repository.InteractionRepository
}

func NewConsumers(
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	interactions repository.InteractionRepository,
) *Consumers {
	return &Consumers{users: users, notifications: notifications, interactions: interactions}
}

// Register 把消费者挂到路由
func (c *Consumers) Register(router *message.Router, sub message.Subscriber) {
	router.AddNoPublisherHandler(InteractionGroup, TopicInteractions, sub, c.handleInteraction)
	router.AddNoPublisherHandler(NotificationGroup, TopicNotifications, sub, c.handleNotification)
}

func (c *Consumers) handleInteraction(msg *message.Message) error {
	var ev InteractionEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		// 报文损坏无法重试出结果,丢弃
		logger.Warn("drop malformed interaction event", zap.Error(err))
		return nil
	}

	ctx := context.Background()
	user, err := c.users.FindByID(ctx, ev.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		logger.Warn("drop interaction for unknown user", zap.Int64("user_id", ev.UserID))
		return nil
	}

	if ev.ResourceType == "" {
		ev.ResourceType = model.ResourceTypePost
	}
	if ev.Action == "" {
		ev.Action = model.ActionView
	}

	return c.interactions.Create(ctx, &model.Interaction{
		UserID:       ev.UserID,
		ResourceType: ev.ResourceType,
		ResourceID:   ev.ResourceID,
		Action:       ev.Action,
		Value:        ev.Value,
	})
}

func (c *Consumers) handleNotification(msg *message.Message) error {
	var ev NotificationEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return err
	}

	ctx := context.Background()
	sender, err := c.users.FindByID(ctx, ev.SenderID)
	if err != nil {
		return err
	}
	if sender == nil {
		return fmt.Errorf("notification sender %d not found", ev.SenderID)
	}
	receiver, err := c.users.FindByID(ctx, ev.ReceiverID)
	if err != nil {
		return err
	}
	if receiver == nil {
		return fmt.Errorf("notification receiver %d not found", ev.ReceiverID)
	}

	return c.notifications.Create(ctx, &model.Notification{
		SenderID:    ev.SenderID,
		ReceiverID:  ev.ReceiverID,
		Type:        ev.Type,
		Message:     ev.Message,
		ReferenceID: ev.ReferenceID,
	})
}
