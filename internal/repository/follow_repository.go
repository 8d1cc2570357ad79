package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/tastegraph/internal/model"
	"github.com/d60-Lab/tastegraph/internal/search"
)

type FollowRepository interface {
	WithTx(tx *gorm.DB) FollowRepository
	// Create 写入关注边;已存在返回 created=false
	Create(ctx context.Context, followerID, followeeID int64) (created bool, err error)
	// Delete 删除关注边;不存在返回 deleted=false
	Delete(ctx context.Context, followerID, followeeID int64) (deleted bool, err error)
	Exists(ctx context.Context, followerID, followeeID int64) (bool, error)
	Find(ctx context.Context, followerID, followeeID int64) (*model.Follow, error)
	// ListFollowers 查某用户的粉丝边,预载 follower 用户
	ListFollowers(ctx context.Context, followeeID int64) ([]model.Follow, error)
	// ListFollowing 查某用户关注的边,预载 followee 用户
	ListFollowing(ctx context.Context, followerID int64) ([]model.Follow, error)
	Search(ctx context.Context, f *search.FollowFilter) ([]model.Follow, int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) WithTx(tx *gorm.DB) FollowRepository { return &followRepository{db: tx} }

func (r *followRepository) Create(ctx context.Context, followerID, followeeID int64) (bool, error) {
	f := &model.Follow{FollowerID: followerID, FolloweeID: followeeID, Status: model.FollowStatusActive}
	// 唯一键冲突不报错,由 RowsAffected 判断是否新建
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(f)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *followRepository) Find(ctx context.Context, followerID, followeeID int64) (*model.Follow, error) {
	var f model.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, followeeID int64) ([]model.Follow, error) {
	var res []model.Follow
	err := r.db.WithContext(ctx).
		Preload("Follower").
		Where("followee_id = ?", followeeID).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *followRepository) ListFollowing(ctx context.Context, followerID int64) ([]model.Follow, error) {
	var res []model.Follow
	err := r.db.WithContext(ctx).
		Preload("Followee").
		Where("follower_id = ?", followerID).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

// Search 按方向 + 用户名/昵称子串过滤,分页返回
func (r *followRepository) Search(ctx context.Context, f *search.FollowFilter) ([]model.Follow, int64, error) {
	f.Normalize()

	q := r.db.WithContext(ctx).Model(&model.Follow{})

	pattern := f.LikePattern()
	switch f.SearchType {
	case search.SearchFollowers:
		q = q.Where("follows.followee_id = ?", f.UserID)
		if pattern != "" {
			q = q.Joins("JOIN users fu ON fu.id = follows.follower_id").
				Where("LOWER(fu.username) LIKE ? OR LOWER(fu.display_name) LIKE ?", pattern, pattern)
		}
	case search.SearchFollowing:
		q = q.Where("follows.follower_id = ?", f.UserID)
		if pattern != "" {
			q = q.Joins("JOIN users fu ON fu.id = follows.followee_id").
				Where("LOWER(fu.username) LIKE ? OR LOWER(fu.display_name) LIKE ?", pattern, pattern)
		}
	default:
		if f.UserID != 0 {
			q = q.Where("follows.follower_id = ? OR follows.followee_id = ?", f.UserID, f.UserID)
		}
		if pattern != "" {
			q = q.Joins("JOIN users fr ON fr.id = follows.follower_id").
				Joins("JOIN users fe ON fe.id = follows.followee_id").
				Where("LOWER(fr.username) LIKE ? OR LOWER(fr.display_name) LIKE ? OR LOWER(fe.username) LIKE ? OR LOWER(fe.display_name) LIKE ?",
					pattern, pattern, pattern, pattern)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.Follow
	err := q.Preload("Follower").Preload("Followee").
		Order(f.OrderClause("follows", "created_at", "updated_at")).
		Offset(f.Offset()).Limit(f.Size).
		Find(&rows).Error
	return rows, total, err
}
