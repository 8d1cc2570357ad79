package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/tastegraph/pkg/logger"
)

const homeChefsKey = "home:chefs"

// FollowerCache Redis List 粉丝 ID 索引,LRANGE 按页取
// 失效策略:关注关系变化时整链删除,读路径回源重建
type FollowerCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFollowerCache(rdb *redis.Client, ttl time.Duration) *FollowerCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &FollowerCache{rdb: rdb, ttl: ttl}
}

func indexKey(userID int64) string { return fmt.Sprintf("followers:index:%d", userID) }

// GetFollowerIDs 命中返回 (ids, true);未命中或 Redis 异常返回 (nil, false)
func (c *FollowerCache) GetFollowerIDs(ctx context.Context, userID int64, page, size int) ([]int64, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	key := indexKey(userID)
	exists, err := c.rdb.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return nil, false
	}

	start := int64(page * size)
	end := start + int64(size) - 1
	raw, err := c.rdb.LRange(ctx, key, start, end).Result()
	if err != nil {
		return nil, false
	}
	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// SetFollowerIDs 整链重建(回源后调用)
func (c *FollowerCache) SetFollowerIDs(ctx context.Context, userID int64, ids []int64) {
	if c == nil || c.rdb == nil {
		return
	}
	key := indexKey(userID)
	vals := make([]any, len(ids))
	for i, id := range ids {
		vals[i] = strconv.FormatInt(id, 10)
	}

	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, key)
	if len(vals) > 0 {
		pipe.RPush(ctx, key, vals...)
	}
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("follower cache rebuild failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// InvalidateUser 删除某用户的粉丝索引
func (c *FollowerCache) InvalidateUser(ctx context.Context, userID int64) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, indexKey(userID)).Err(); err != nil {
		logger.Warn("follower cache invalidate failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// InvalidateHomeChefs 关注变化后让首页厨师榜尽快刷新;失败不影响主流程
func (c *FollowerCache) InvalidateHomeChefs(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, homeChefsKey).Err(); err != nil {
		logger.Warn("evict home:chefs failed", zap.Error(err))
	}
}
