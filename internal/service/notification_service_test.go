package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/tastegraph/internal/model"
	"github.com/d60-Lab/tastegraph/internal/repository"
	"github.com/d60-Lab/tastegraph/pkg/apperr"
)

func TestNotificationReadFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sender := seedUser(t, env.db, "alice")
	receiver := seedUser(t, env.db, "bob")

	notifRepo := repository.NewNotificationRepository(env.db)
	svc := NewNotificationService(notifRepo, repository.NewUserRepository(env.db))

	for _, msg := range []string{"first", "second"} {
		require.NoError(t, notifRepo.Create(ctx, &model.Notification{
			SenderID:   sender.ID,
			ReceiverID: receiver.ID,
			Type:       model.NotificationTypeFollow,
			Message:    msg,
		}))
	}

	all, err := svc.ListByUser(ctx, receiver.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alice", all[0].SenderUsername)

	unread, err := svc.ListUnread(ctx, receiver.ID)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	require.NoError(t, svc.MarkRead(ctx, all[0].ID))
	unread, err = svc.ListUnread(ctx, receiver.ID)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	require.NoError(t, svc.MarkAllRead(ctx, receiver.ID))
	unread, err = svc.ListUnread(ctx, receiver.ID)
	require.NoError(t, err)
	assert.Len(t, unread, 0)
}

func TestNotificationMarkReadMissing(t *testing.T) {
	env := newTestEnv(t)
	svc := NewNotificationService(
		repository.NewNotificationRepository(env.db),
		repository.NewUserRepository(env.db))

	err := svc.MarkRead(context.Background(), 9999)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = svc.MarkAllRead(context.Background(), 9999)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
