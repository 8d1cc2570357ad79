package service

import (
	"context"

	"github.com/d60-Lab/tastegraph/internal/model"
	"github.com/d60-Lab/tastegraph/internal/repository"
	"github.com/d60-Lab/tastegraph/pkg/apperr"
)

// SaveService 收藏;目标是 (resource_type, resource_id) 二元组
type SaveService interface {
	Save(ctx context.Context, userID int64, resourceType string, resourceID int64) (*SaveDTO, error)
	Unsave(ctx context.Context, userID int64, resourceType string, resourceID int64) error
	List(ctx context.Context, userID int64) ([]SaveDTO, error)
}

type saveService struct {
	saves repository.SaveRepository
	users repository.UserRepository
}

func NewSaveService(saves repository.SaveRepository, users repository.UserRepository) SaveService {
	return &saveService{saves: saves, users: users}
}

func validSaveTarget(resourceType string) bool {
	return resourceType == model.ResourceTypePost || resourceType == model.ResourceTypeRecipe
}

func (s *saveService) Save(ctx context.Context, userID int64, resourceType string, resourceID int64) (*SaveDTO, error) {
	if !validSaveTarget(resourceType) {
		return nil, apperr.Validation("unsupported resource type %q", resourceType)
	}
	if resourceID <= 0 {
		return nil, apperr.Validation("invalid resource id")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", userID)
	}

	row := &model.Save{UserID: userID, ResourceType: resourceType, ResourceID: resourceID}
	created, err := s.saves.Create(ctx, row)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperr.Conflict("resource already saved")
	}
	return &SaveDTO{
		ID:           row.ID,
		ResourceType: row.ResourceType,
		ResourceID:   row.ResourceID,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func (s *saveService) Unsave(ctx context.Context, userID int64, resourceType string, resourceID int64) error {
	deleted, err := s.saves.Delete(ctx, userID, resourceType, resourceID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("save not found")
	}
	return nil
}

func (s *saveService) List(ctx context.Context, userID int64) ([]SaveDTO, error) {
	rows, err := s.saves.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make([]SaveDTO, 0, len(rows))
	for _, r := range rows {
		res = append(res, SaveDTO{
			ID:           r.ID,
			ResourceType: r.ResourceType,
			ResourceID:   r.ResourceID,
			CreatedAt:    r.CreatedAt,
		})
	}
	return res, nil
}
