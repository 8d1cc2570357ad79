package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/tastegraph/internal/model"
)

// InteractionRepository 行为流水只追加,不提供业务读路径
type InteractionRepository interface {
	Create(ctx context.Context, i *model.Interaction) error
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

type interactionRepository struct{ db *gorm.DB }

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Create(ctx context.Context, i *model.Interaction) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *interactionRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Interaction{}).
		Where("user_id = ?", userID).
		Count(&cnt).Error
	return cnt, err
}
