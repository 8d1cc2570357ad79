package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/tastegraph/internal/model"
	"github.com/d60-Lab/tastegraph/internal/repository"
)

type capturingPublisher struct {
	published map[string][]*message.Message
}

func (p *capturingPublisher) Publish(topic string, msgs ...*message.Message) error {
	if p.published == nil {
		p.published = make(map[string][]*message.Message)
	}
	p.published[topic] = append(p.published[topic], msgs...)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

type failingPublisher struct{}

func (failingPublisher) Publish(string, ...*message.Message) error {
	return errors.New("broker down")
}

func (failingPublisher) Close() error { return nil }

func TestDispatcherPublishesAndMarksDone(t *testing.T) {
	db := setupEventDB(t)
	outbox := repository.NewOutboxRepository(db)
	ctx := context.Background()

	require.NoError(t, outbox.Append(ctx, TopicNotifications, NotificationEvent{SenderID: 1, ReceiverID: 2}))
	require.NoError(t, outbox.Append(ctx, TopicInteractions, InteractionEvent{UserID: 1}))

	pub := &capturingPublisher{}
	d := NewDispatcher(outbox, pub, 10, time.Second)
	require.NoError(t, d.ProcessOnce(ctx))

	assert.Len(t, pub.published[TopicNotifications], 1)
	assert.Len(t, pub.published[TopicInteractions], 1)

	pending, err := outbox.CountPending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, pending)

	var doneCnt int64
	require.NoError(t, db.Model(&model.Outbox{}).
		Where("status = ?", model.OutboxStatusDone).Count(&doneCnt).Error)
	assert.EqualValues(t, 2, doneCnt)
}

func TestDispatcherRequeuesOnPublishFailure(t *testing.T) {
	db := setupEventDB(t)
	outbox := repository.NewOutboxRepository(db)
	ctx := context.Background()

	require.NoError(t, outbox.Append(ctx, TopicNotifications, NotificationEvent{SenderID: 1, ReceiverID: 2}))

	d := NewDispatcher(outbox, failingPublisher{}, 10, time.Second)
	require.NoError(t, d.ProcessOnce(ctx))

	// 投递失败回退 pending,下一轮重试
	pending, err := outbox.CountPending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)

	var row model.Outbox
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, 1, row.Attempts)
}

func TestDispatcherEndToEndWithGoChannel(t *testing.T) {
	db := setupEventDB(t)
	outbox := repository.NewOutboxRepository(db)
	ctx := context.Background()

	wmLogger := watermill.NopLogger{}
	pubsub := NewGoChannelPubSub(wmLogger)
	defer pubsub.Close()

	msgs, err := pubsub.Subscribe(ctx, TopicNotifications)
	require.NoError(t, err)

	require.NoError(t, outbox.Append(ctx, TopicNotifications, NotificationEvent{SenderID: 1, ReceiverID: 2, Type: model.NotificationTypeFollow}))

	d := NewDispatcher(outbox, pubsub, 10, time.Second)
	require.NoError(t, d.ProcessOnce(ctx))

	select {
	case msg := <-msgs:
		msg.Ack()
		assert.Contains(t, string(msg.Payload), `"type":"FOLLOW"`)
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered")
	}
}
