package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/tastegraph/internal/cache"
	"github.com/d60-Lab/tastegraph/internal/model"
	"github.com/d60-Lab/tastegraph/internal/repository"
	"github.com/d60-Lab/tastegraph/internal/search"
	"github.com/d60-Lab/tastegraph/pkg/apperr"
)

func TestFollowSelfRejected(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "alice")

	_, err := env.follows.Follow(context.Background(), u.ID, u.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestFollowUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "alice")

	_, err := env.follows.Follow(context.Background(), u.ID, 9999)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestFollowDuplicateIsConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := seedUser(t, env.db, "alice")
	b := seedUser(t, env.db, "bob")

	_, err := env.follows.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)

	_, err = env.follows.Follow(ctx, a.ID, b.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// 冲突不得重复计数
	st, err := env.stats.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.FollowersCount)
}

func TestFollowUpdatesCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := seedUser(t, env.db, "alice")
	b := seedUser(t, env.db, "bob")

	_, err := env.follows.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)

	sa, err := env.stats.Get(ctx, a.ID)
	require.NoError(t, err)
	sb, err := env.stats.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sa.FollowingCount)
	assert.Equal(t, 0, sa.FollowersCount)
	assert.Equal(t, 1, sb.FollowersCount)
	assert.Equal(t, 0, sb.FollowingCount)
}

func TestFollowAppendsOutboxEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := seedUser(t, env.db, "alice")
	b := seedUser(t, env.db, "bob")

	_, err := env.follows.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)

	// 通知 + 交互流水各一条
	pending, err := env.outbox.CountPending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, pending)
}

func TestMutualFollowCreatesSingleConversation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := seedUser(t, env.db, "alice")
	b := seedUser(t, env.db, "bob")

	_, err := env.follows.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)

	conv, err := env.convs.FindBetween(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Nil(t, conv, "one-way follow must not create a conversation")

	_, err = env.follows.Follow(ctx, b.ID, a.ID)
	require.NoError(t, err)

	conv, err = env.convs.FindBetween(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.NotNil(t, conv)

	var cnt int64
	require.NoError(t, env.db.Model(&model.Conversation{}).Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt)

	mutual, err := env.follows.IsMutual(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, mutual)
}

func TestUnfollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := seedUser(t, env.db, "alice")
	b := seedUser(t, env.db, "bob")

	_, err := env.follows.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.NoError(t, env.follows.Unfollow(ctx, a.ID, b.ID))

	following, err := env.follows.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, following)

	sb, err := env.stats.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, sb.FollowersCount)

	// 二次取关:边已不存在
	err = env.follows.Unfollow(ctx, a.ID, b.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCountersNeverGoNegative(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 直接对空计数行回退,验证保底
	require.NoError(t, env.stats.ApplyUnfollow(ctx, 101, 102))

	s1, err := env.stats.Get(ctx, 101)
	require.NoError(t, err)
	s2, err := env.stats.Get(ctx, 102)
	require.NoError(t, err)
	assert.Equal(t, 0, s1.FollowingCount)
	assert.Equal(t, 0, s2.FollowersCount)
}

func TestFollowersServedFromCacheIndex(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	followerCache := cache.NewFollowerCache(rdb, time.Minute)

	svc := NewFollowService(env.db,
		repository.NewFollowRepository(env.db),
		repository.NewUserRepository(env.db),
		repository.NewUserStatsRepository(env.db),
		repository.NewConversationRepository(env.db),
		repository.NewOutboxRepository(env.db),
		followerCache)

	target := seedUser(t, env.db, "target")
	alice := seedUser(t, env.db, "alice")
	bob := seedUser(t, env.db, "bob")
	_, err := svc.Follow(ctx, alice.ID, target.ID)
	require.NoError(t, err)
	_, err = svc.Follow(ctx, bob.ID, target.ID)
	require.NoError(t, err)

	// 首次回源并重建索引
	list, err := svc.Followers(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// 绕过服务直接删边:命中索引时仍返回缓存内容
	require.NoError(t, env.db.Exec("DELETE FROM follows").Error)
	list, err = svc.Followers(ctx, target.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// 失效后回源拿到真实状态
	followerCache.InvalidateUser(ctx, target.ID)
	list, err = svc.Followers(ctx, target.ID)
	require.NoError(t, err)
	assert.Len(t, list, 0)
}

func TestSearchFollowers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	target := seedUser(t, env.db, "target")
	alice := seedUser(t, env.db, "alice")
	bob := seedUser(t, env.db, "bob")

	_, err := env.follows.Follow(ctx, alice.ID, target.ID)
	require.NoError(t, err)
	_, err = env.follows.Follow(ctx, bob.ID, target.ID)
	require.NoError(t, err)

	page, err := env.follows.Search(ctx, &search.FollowFilter{
		Filter:     search.Filter{SearchValue: "ali"},
		UserID:     target.ID,
		SearchType: search.SearchFollowers,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalElements)
	require.Len(t, page.Data, 1)
	require.NotNil(t, page.Data[0].Follower)
	assert.Equal(t, "alice", page.Data[0].Follower.Username)
	assert.Nil(t, page.Data[0].Followee)
}

func TestSearchFollowingPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	me := seedUser(t, env.db, "me")
	for _, name := range []string{"u1", "u2", "u3"} {
		u := seedUser(t, env.db, name)
		_, err := env.follows.Follow(ctx, me.ID, u.ID)
		require.NoError(t, err)
	}

	page, err := env.follows.Search(ctx, &search.FollowFilter{
		Filter:     search.Filter{Page: 0, Size: 2},
		UserID:     me.ID,
		SearchType: search.SearchFollowing,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Data, 2)
}
