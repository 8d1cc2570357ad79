package event

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"

	"github.com/d60-Lab/tastegraph/internal/repository"
	"github.com/d60-Lab/tastegraph/pkg/logger"
)

// Dispatcher 轮询 outbox,把 pending 事件投递到消息通道
// 投递失败的行回退 pending,下一轮重试;事件丢失边界显式可测
type Dispatcher struct {
	outbox       repository.OutboxRepository
	pub          message.Publisher
	batchSize    int
	pollInterval time.Duration
}

func NewDispatcher(outbox repository.OutboxRepository, pub message.Publisher, batchSize int, pollInterval time.Duration) *Dispatcher {
	if batchSize <= 0 {
		batchSize = 128
	}
	if pollInterval <= 0 {
		pollInterval = 200 * time.Millisecond
	}
	return &Dispatcher{outbox: outbox, pub: pub, batchSize: batchSize, pollInterval: pollInterval}
}

// Start 启动轮询;返回停止函数
func (d *Dispatcher) Start() func(context.Context) error {
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(d.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := d.ProcessOnce(context.Background()); err != nil {
					logger.Error("outbox dispatch failed", zap.Error(err))
				}
			}
		}
	}()
	return func(ctx context.Context) error {
		close(stop)
		select {
		case <-done:
		case <-ctx.Done():
		}
		return nil
	}
}

// ProcessOnce 领取一批并逐条投递
func (d *Dispatcher) ProcessOnce(ctx context.Context) error {
	batch, err := d.outbox.ClaimBatch(ctx, d.batchSize)
	if err != nil {
		return err
	}
	for _, row := range batch {
		msg := message.NewMessage(watermill.NewUUID(), row.Payload)
		if err := d.pub.Publish(row.Topic, msg); err != nil {
			logger.Warn("outbox publish failed, requeue",
				zap.String("id", row.ID), zap.String("topic", row.Topic), zap.Error(err))
			if rqErr := d.outbox.Requeue(ctx, row.ID); rqErr != nil {
				return rqErr
			}
			continue
		}
		if err := d.outbox.MarkDone(ctx, row.ID); err != nil {
			return err
		}
	}
	return nil
}
