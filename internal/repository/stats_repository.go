package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/tastegraph/internal/model"
)

type UserStatsRepository interface {
	WithTx(tx *gorm.DB) UserStatsRepository
	// Get 找不到时返回零值行(计数全 0)
	Get(ctx context.Context, userID int64) (*model.UserStats, error)
	EnsureRow(ctx context.Context, userID int64) error
	// ApplyFollow 关注成功后:follower.following+1, followee.followers+1
	ApplyFollow(ctx context.Context, followerID, followeeID int64) error
	// ApplyUnfollow 取关后:两侧计数 -1,保底 0
	ApplyUnfollow(ctx context.Context, followerID, followeeID int64) error
	SetRecipeCount(ctx context.Context, userID int64, count int) error
}

type userStatsRepository struct{ db *gorm.DB }

func NewUserStatsRepository(db *gorm.DB) UserStatsRepository { return &userStatsRepository{db: db} }

func (r *userStatsRepository) WithTx(tx *gorm.DB) UserStatsRepository {
	return &userStatsRepository{db: tx}
}

func (r *userStatsRepository) Get(ctx context.Context, userID int64) (*model.UserStats, error) {
	var s model.UserStats
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.UserStats{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *userStatsRepository) EnsureRow(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&model.UserStats{UserID: userID}).Error
}

// upsert 增减单列;insert-if-absent + 原子自增,消除首写竞态
// 减量用 CASE WHEN 保底 0(sqlite/postgres 通用)
func (r *userStatsRepository) bump(ctx context.Context, userID int64, column string, delta int) error {
	row := &model.UserStats{UserID: userID}
	initial := 0
	if delta > 0 {
		initial = delta
	}
	switch column {
	case "followers_count":
		row.FollowersCount = initial
	case "following_count":
		row.FollowingCount = initial
	case "recipe_count":
		row.RecipeCount = initial
	}

	var expr clause.Expr
	if delta >= 0 {
		expr = gorm.Expr(column+" + ?", delta)
	} else {
		expr = gorm.Expr("CASE WHEN "+column+" >= ? THEN "+column+" - ? ELSE 0 END", -delta, -delta)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{column: expr}),
		}).
		Create(row).Error
}

func (r *userStatsRepository) ApplyFollow(ctx context.Context, followerID, followeeID int64) error {
	if err := r.bump(ctx, followerID, "following_count", 1); err != nil {
		return err
	}
	return r.bump(ctx, followeeID, "followers_count", 1)
}

func (r *userStatsRepository) ApplyUnfollow(ctx context.Context, followerID, followeeID int64) error {
	if err := r.bump(ctx, followerID, "following_count", -1); err != nil {
		return err
	}
	return r.bump(ctx, followeeID, "followers_count", -1)
}

func (r *userStatsRepository) SetRecipeCount(ctx context.Context, userID int64, count int) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{"recipe_count": count}),
		}).
		Create(&model.UserStats{UserID: userID, RecipeCount: count}).Error
}
