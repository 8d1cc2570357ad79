package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/tastegraph/internal/model"
)

type NotificationRepository interface {
	WithTx(tx *gorm.DB) NotificationRepository
	Create(ctx context.Context, n *model.Notification) error
	// ListByReceiver 按创建时间倒序
	ListByReceiver(ctx context.Context, receiverID int64) ([]model.Notification, error)
	ListUnreadByReceiver(ctx context.Context, receiverID int64) ([]model.Notification, error)
	// MarkRead 不存在返回 updated=false
	MarkRead(ctx context.Context, id int64) (updated bool, err error)
	MarkAllRead(ctx context.Context, receiverID int64) error
}

type notificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) WithTx(tx *gorm.DB) NotificationRepository {
	return &notificationRepository{db: tx}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListByReceiver(ctx context.Context, receiverID int64) ([]model.Notification, error) {
	var res []model.Notification
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *notificationRepository) ListUnreadByReceiver(ctx context.Context, receiverID int64) ([]model.Notification, error) {
	var res []model.Notification
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, receiverID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Update("is_read", true).Error
}
