package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/tastegraph/internal/cache"
	"github.com/d60-Lab/tastegraph/internal/event"
	"github.com/d60-Lab/tastegraph/internal/model"
	"github.com/d60-Lab/tastegraph/internal/repository"
	"github.com/d60-Lab/tastegraph/internal/search"
	"github.com/d60-Lab/tastegraph/pkg/apperr"
	"github.com/d60-Lab/tastegraph/pkg/logger"
)

// FOLLOW 行为在交互流水里的权重
const followInteractionValue = 4.0

// Redis 粉丝索引只缓存前这么多个 ID,超大粉丝量直接回源
const maxFollowerIndexSize = 1000

// FollowService 关注关系服务
type FollowService interface {
	Follow(ctx context.Context, followerID, followeeID int64) (*FollowDTO, error)
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
	IsMutual(ctx context.Context, a, b int64) (bool, error)
	Followers(ctx context.Context, userID int64) ([]FollowUserDTO, error)
	Following(ctx context.Context, userID int64) ([]FollowUserDTO, error)
	Search(ctx context.Context, f *search.FollowFilter) (*search.PageResult[FollowDTO], error)
}

type followService struct {
	db            *gorm.DB
	follows       repository.FollowRepository
	users         repository.UserRepository
	stats         repository.UserStatsRepository
	conversations repository.ConversationRepository
	outbox        repository.OutboxRepository
	followerCache *cache.FollowerCache
}

func NewFollowService(
	db *gorm.DB,
	follows repository.FollowRepository,
	users repository.UserRepository,
	stats repository.UserStatsRepository,
	conversations repository.ConversationRepository,
	outbox repository.OutboxRepository,
	followerCache *cache.FollowerCache,
) FollowService {
	return &followService{
		db:            db,
		follows:       follows,
		users:         users,
		stats:         stats,
		conversations: conversations,
		outbox:        outbox,
		followerCache: followerCache,
	}
}

// Follow 建立关注:边 + 计数器 + outbox 事件同事务落地;
// 互关时惰性建会话;缓存失效不影响主流程
func (s *followService) Follow(ctx context.Context, followerID, followeeID int64) (*FollowDTO, error) {
	if followerID == followeeID {
		return nil, apperr.Validation("cannot follow yourself")
	}

	follower, err := s.users.FindByID(ctx, followerID)
	if err != nil {
		return nil, err
	}
	if follower == nil {
		return nil, apperr.NotFound("follower %d not found", followerID)
	}
	followee, err := s.users.FindByID(ctx, followeeID)
	if err != nil {
		return nil, err
	}
	if followee == nil {
		return nil, apperr.NotFound("followee %d not found", followeeID)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := s.follows.WithTx(tx).Create(ctx, followerID, followeeID)
		if err != nil {
			return err
		}
		if !created {
			return apperr.Conflict("already following user %d", followeeID)
		}
		if err := s.stats.WithTx(tx).ApplyFollow(ctx, followerID, followeeID); err != nil {
			return err
		}

		ob := s.outbox.WithTx(tx)
		if err := ob.Append(ctx, event.TopicNotifications, event.NotificationEvent{
			SenderID:    followerID,
			ReceiverID:  followeeID,
			Type:        model.NotificationTypeFollow,
			Message:     fmt.Sprintf("%s started following you", follower.Username),
			ReferenceID: followeeID,
		}); err != nil {
			return err
		}
		return ob.Append(ctx, event.TopicInteractions, event.InteractionEvent{
			UserID:       followerID,
			ResourceType: model.ResourceTypeUser,
			ResourceID:   followeeID,
			Action:       model.ActionFollow,
			Value:        followInteractionValue,
		})
	})
	if err != nil {
		return nil, err
	}

	// 反向边已存在 → 互关,惰性建会话(先查重)
	mutual, err := s.follows.Exists(ctx, followeeID, followerID)
	if err != nil {
		return nil, err
	}
	if mutual {
		if err := s.createConversationIfAbsent(ctx, follower, followee); err != nil {
			// 会话创建失败不回滚关注本身
			logger.Error("create conversation after mutual follow failed",
				zap.Int64("follower", followerID), zap.Int64("followee", followeeID), zap.Error(err))
		}
	}

	s.followerCache.InvalidateUser(ctx, followeeID)
	s.followerCache.InvalidateHomeChefs(ctx)

	f, err := s.follows.Find(ctx, followerID, followeeID)
	if err != nil {
		return nil, err
	}
	return &FollowDTO{
		ID:        f.ID,
		Follower:  toFollowUserDTO(follower),
		Followee:  toFollowUserDTO(followee),
		Status:    f.Status,
		CreatedAt: f.CreatedAt,
	}, nil
}

func (s *followService) createConversationIfAbsent(ctx context.Context, a, b *model.User) error {
	existing, err := s.conversations.FindBetween(ctx, a.ID, b.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = s.conversations.CreateBetween(ctx, a, b)
	if err != nil {
		return err
	}
	logger.Info("conversation created after mutual follow",
		zap.String("user_a", a.Username), zap.String("user_b", b.Username))
	return nil
}

// Unfollow 删边 + 计数回退(保底 0)同事务
func (s *followService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted, err := s.follows.WithTx(tx).Delete(ctx, followerID, followeeID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound("follow relationship not found")
		}
		return s.stats.WithTx(tx).ApplyUnfollow(ctx, followerID, followeeID)
	})
	if err != nil {
		return err
	}

	s.followerCache.InvalidateUser(ctx, followeeID)
	s.followerCache.InvalidateHomeChefs(ctx)
	return nil
}

func (s *followService) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	return s.follows.Exists(ctx, followerID, followeeID)
}

func (s *followService) IsMutual(ctx context.Context, a, b int64) (bool, error) {
	ab, err := s.follows.Exists(ctx, a, b)
	if err != nil {
		return false, err
	}
	if !ab {
		return false, nil
	}
	return s.follows.Exists(ctx, b, a)
}

// Followers 粉丝列表;先走 Redis ID 索引,未命中回源并重建
func (s *followService) Followers(ctx context.Context, userID int64) ([]FollowUserDTO, error) {
	if ids, ok := s.followerCache.GetFollowerIDs(ctx, userID, 0, maxFollowerIndexSize); ok {
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		res := make([]FollowUserDTO, 0, len(users))
		for i := range users {
			res = append(res, *toFollowUserDTO(&users[i]))
		}
		return res, nil
	}

	edges, err := s.follows.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make([]FollowUserDTO, 0, len(edges))
	ids := make([]int64, 0, len(edges))
	for _, e := range edges {
		if e.Follower == nil {
			continue
		}
		res = append(res, *toFollowUserDTO(e.Follower))
		ids = append(ids, e.Follower.ID)
	}
	if len(ids) > 0 && len(ids) <= maxFollowerIndexSize {
		s.followerCache.SetFollowerIDs(ctx, userID, ids)
	}
	return res, nil
}

func (s *followService) Following(ctx context.Context, userID int64) ([]FollowUserDTO, error) {
	edges, err := s.follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make([]FollowUserDTO, 0, len(edges))
	for _, e := range edges {
		if e.Followee == nil {
			continue
		}
		res = append(res, *toFollowUserDTO(e.Followee))
	}
	return res, nil
}

// Search 分页查询;searchType 决定 DTO 投影哪一侧
func (s *followService) Search(ctx context.Context, f *search.FollowFilter) (*search.PageResult[FollowDTO], error) {
	f.Normalize()
	rows, total, err := s.follows.Search(ctx, f)
	if err != nil {
		return nil, err
	}

	dtos := make([]FollowDTO, 0, len(rows))
	for _, row := range rows {
		dto := FollowDTO{ID: row.ID, Status: row.Status, CreatedAt: row.CreatedAt}
		switch f.SearchType {
		case search.SearchFollowers:
			dto.Follower = toFollowUserDTO(row.Follower)
		case search.SearchFollowing:
			dto.Followee = toFollowUserDTO(row.Followee)
		default:
			dto.Follower = toFollowUserDTO(row.Follower)
			dto.Followee = toFollowUserDTO(row.Followee)
		}
		dtos = append(dtos, dto)
	}
	return search.NewPageResult(dtos, total, &f.Filter), nil
}
