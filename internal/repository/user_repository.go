package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/tastegraph/internal/model"
	"github.com/d60-Lab/tastegraph/internal/search"
)

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(ctx context.Context, u *model.User) error
	// FindByID 找不到时返回 (nil, nil)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.User, error)
	TouchLastActive(ctx context.Context, id int64) error
	Search(ctx context.Context, f *search.UserFilter) ([]model.User, int64, error)
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository { return &userRepository{db: tx} }

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *userRepository) TouchLastActive(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("last_active_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

// Search 全文匹配 username/display_name/bio + 封闭过滤字段
func (r *userRepository) Search(ctx context.Context, f *search.UserFilter) ([]model.User, int64, error) {
	f.Normalize()

	q := r.db.WithContext(ctx).Model(&model.User{})

	if pattern := f.LikePattern(); pattern != "" {
		q = q.Where("LOWER(username) LIKE ? OR LOWER(display_name) LIKE ? OR LOWER(bio) LIKE ?",
			pattern, pattern, pattern)
	}
	if f.IsChef != nil {
		q = q.Where("is_chef = ?", *f.IsChef)
	}
	if f.Verified != nil {
		q = q.Where("verified = ?", *f.Verified)
	}
	if f.DietaryPreference != "" {
		// 关联集合过滤:偏好表子查询
		q = q.Where("EXISTS (SELECT 1 FROM user_dietary_preferences p WHERE p.user_id = users.id AND p.preference = ?)",
			f.DietaryPreference)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.User
	err := q.Order(f.OrderClause("users", "created_at", "username", "last_active_at")).
		Offset(f.Offset()).Limit(f.Size).
		Find(&rows).Error
	return rows, total, err
}
