package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/tastegraph/internal/model"
)

type SaveRepository interface {
	// Create 重复收藏返回 created=false
	Create(ctx context.Context, s *model.Save) (created bool, err error)
	Delete(ctx context.Context, userID int64, resourceType string, resourceID int64) (deleted bool, err error)
	ListByUser(ctx context.Context, userID int64) ([]model.Save, error)
}

type saveRepository struct{ db *gorm.DB }

func NewSaveRepository(db *gorm.DB) SaveRepository { return &saveRepository{db: db} }

func (r *saveRepository) Create(ctx context.Context, s *model.Save) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(s)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *saveRepository) Delete(ctx context.Context, userID int64, resourceType string, resourceID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND resource_type = ? AND resource_id = ?", userID, resourceType, resourceID).
		Delete(&model.Save{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *saveRepository) ListByUser(ctx context.Context, userID int64) ([]model.Save, error) {
	var res []model.Save
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}
