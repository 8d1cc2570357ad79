package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*FollowerCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewFollowerCache(rdb, time.Minute), mr
}

func TestFollowerCacheRoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	_, ok := c.GetFollowerIDs(ctx, 1, 0, 10)
	assert.False(t, ok)

	c.SetFollowerIDs(ctx, 1, []int64{10, 20, 30})

	ids, ok := c.GetFollowerIDs(ctx, 1, 0, 10)
	require.True(t, ok)
	assert.Equal(t, []int64{10, 20, 30}, ids)

	// 分页读取
	ids, ok = c.GetFollowerIDs(ctx, 1, 1, 2)
	require.True(t, ok)
	assert.Equal(t, []int64{30}, ids)
}

func TestFollowerCacheEmptyListStillHit(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	// 空列表重建后 key 不存在(RPush 没有元素),视为未命中回源
	c.SetFollowerIDs(ctx, 2, nil)
	_, ok := c.GetFollowerIDs(ctx, 2, 0, 10)
	assert.False(t, ok)
}

func TestFollowerCacheInvalidate(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	c.SetFollowerIDs(ctx, 1, []int64{10})
	c.InvalidateUser(ctx, 1)
	_, ok := c.GetFollowerIDs(ctx, 1, 0, 10)
	assert.False(t, ok)

	require.NoError(t, mr.Set("home:chefs", "cached"))
	c.InvalidateHomeChefs(ctx)
	assert.False(t, mr.Exists("home:chefs"))
}

func TestFollowerCacheExpires(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	c.SetFollowerIDs(ctx, 1, []int64{10})
	mr.FastForward(2 * time.Minute)

	_, ok := c.GetFollowerIDs(ctx, 1, 0, 10)
	assert.False(t, ok)
}

func TestFollowerCacheNilSafe(t *testing.T) {
	ctx := context.Background()
	var c *FollowerCache

	_, ok := c.GetFollowerIDs(ctx, 1, 0, 10)
	assert.False(t, ok)
	c.SetFollowerIDs(ctx, 1, []int64{1})
	c.InvalidateUser(ctx, 1)
	c.InvalidateHomeChefs(ctx)
}
