package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/tastegraph/internal/model"
)

type OutboxRepository interface {
	WithTx(tx *gorm.DB) OutboxRepository
	// Append 事件序列化后落 outbox,应在业务事务内调用
	Append(ctx context.Context, topic string, event any) error
	// ClaimBatch 取一批 pending 并置为 processing
	ClaimBatch(ctx context.Context, limit int) ([]model.Outbox, error)
	MarkDone(ctx context.Context, id string) error
	// Requeue 投递失败回退 pending,attempts+1
	Requeue(ctx context.Context, id string) error
	CountPending(ctx context.Context) (int64, error)
}

type outboxRepository struct{ db *gorm.DB }

func NewOutboxRepository(db *gorm.DB) OutboxRepository { return &outboxRepository{db: db} }

func (r *outboxRepository) WithTx(tx *gorm.DB) OutboxRepository { return &outboxRepository{db: tx} }

func (r *outboxRepository) Append(ctx context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	row := &model.Outbox{
		ID:      uuid.New().String(),
		Topic:   topic,
		Payload: payload,
		Status:  model.OutboxStatusPending,
	}
	return r.db.WithContext(ctx).Create(row).Error
}

// ClaimBatch 事务内领取一批 pending;postgres 下加 SKIP LOCKED 支持多实例
func (r *outboxRepository) ClaimBatch(ctx context.Context, limit int) ([]model.Outbox, error) {
	var batch []model.Outbox
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("status = ?", model.OutboxStatusPending).
			Order("created_at").
			Limit(limit)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		}
		if err := q.Find(&batch).Error; err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}
		ids := make([]string, len(batch))
		for i, b := range batch {
			ids[i] = b.ID
		}
		return tx.Model(&model.Outbox{}).
			Where("id IN ?", ids).
			Update("status", model.OutboxStatusProcessing).Error
	})
	return batch, err
}

func (r *outboxRepository) MarkDone(ctx context.Context, id string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.Outbox{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": model.OutboxStatusDone, "processed_at": now}).Error
}

func (r *outboxRepository) Requeue(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Outbox{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":   model.OutboxStatusPending,
			"attempts": gorm.Expr("attempts + 1"),
		}).Error
}

func (r *outboxRepository) CountPending(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Outbox{}).
		Where("status = ?", model.OutboxStatusPending).
		Count(&cnt).Error
	return cnt, err
}
