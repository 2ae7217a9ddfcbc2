package services

import (
	"context"
	"errors"

	"github.com/dsaidinesh/influencerflow/internal/logger"
	"github.com/dsaidinesh/influencerflow/internal/models"
	"github.com/dsaidinesh/influencerflow/internal/repositories"
	"github.com/dsaidinesh/influencerflow/internal/services/dto"
	"github.com/dsaidinesh/influencerflow/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreatorService interface {
	CreateCreator(ctx context.Context, db *gorm.DB, req *dto.CreateCreatorRequest) (*dto.CreatorResponse, error)
	GetCreator(ctx context.Context, db *gorm.DB, id string) (*dto.CreatorResponse, error)
	UpdateCreator(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateCreatorRequest) (*dto.CreatorResponse, error)
	DeleteCreator(ctx context.Context, db *gorm.DB, id string) error
	ListCreators(ctx context.Context, db *gorm.DB, criteria repositories.CreatorSearchCriteria) (*dto.CreatorListResponse, error)
}

type CreatorServiceImpl struct {
	creatorRepo repositories.CreatorRepository
}

func NewCreatorService(creatorRepo repositories.CreatorRepository) CreatorService {
	return &CreatorServiceImpl{creatorRepo: creatorRepo}
}

func (s *CreatorServiceImpl) CreateCreator(ctx context.Context, db *gorm.DB, req *dto.CreateCreatorRequest) (*dto.CreatorResponse, error) {
	creator := &models.Creator{
		ID:                    uuid.NewString(),
		Name:                  req.Name,
		Email:                 req.Email,
		Platform:              models.Platform(req.Platform),
		FollowersCount:        req.FollowersCount,
		FollowersCountNumeric: req.FollowersCountNumeric,
		EngagementRate:        req.EngagementRate,
		Niche:                 req.Niche,
		Language:              req.Language,
		Country:               req.Country,
		About:                 req.About,
		ChannelName:           req.ChannelName,
		AvgViews:              req.AvgViews,
		CollaborationRate:     req.CollaborationRate,
		ProfileImage:          req.ProfileImage,
	}

	if err := s.creatorRepo.Create(db, creator); err != nil {
		if errors.Is(err, repositories.ErrCreatorAlreadyExists) {
			return nil, apperrors.ErrCreatorEmailExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Creator created", "creator_id", creator.ID, "platform", req.Platform)
	return dto.CreatorToResponse(creator), nil
}

func (s *CreatorServiceImpl) GetCreator(ctx context.Context, db *gorm.DB, id string) (*dto.CreatorResponse, error) {
	creator, err := s.creatorRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCreatorNotFound) {
			return nil, apperrors.ErrCreatorNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.CreatorToResponse(creator), nil
}

func (s *CreatorServiceImpl) UpdateCreator(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateCreatorRequest) (*dto.CreatorResponse, error) {
	creator, err := s.creatorRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCreatorNotFound) {
			return nil, apperrors.ErrCreatorNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	profileChanged := applyCreatorUpdates(creator, req)

	if err := s.creatorRepo.Update(db, creator); err != nil {
		if errors.Is(err, repositories.ErrCreatorNotFound) {
			return nil, apperrors.ErrCreatorNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// Profile text feeds the embedding, so a stale vector must be dropped and
	// left for the backfill worker to regenerate.
	if profileChanged && creator.HasEmbedding() {
		if err := s.creatorRepo.UpdateEmbedding(db, id, nil); err != nil {
			logger.CtxWarn(ctx, "Failed to invalidate stale embedding", "creator_id", id, "error", err.Error())
		}
	}

	logger.CtxInfo(ctx, "Creator updated", "creator_id", id)
	return s.GetCreator(ctx, db, id)
}

func (s *CreatorServiceImpl) DeleteCreator(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.creatorRepo.Delete(db, id); err != nil {
		if errors.Is(err, repositories.ErrCreatorNotFound) {
			return apperrors.ErrCreatorNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Creator deleted", "creator_id", id)
	return nil
}

func (s *CreatorServiceImpl) ListCreators(ctx context.Context, db *gorm.DB, criteria repositories.CreatorSearchCriteria) (*dto.CreatorListResponse, error) {
	creators, total, err := s.creatorRepo.Search(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.CreatorResponse, 0, len(creators))
	for i := range creators {
		responses = append(responses, *dto.CreatorToResponse(&creators[i]))
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.CreatorListResponse{
		Creators: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// applyCreatorUpdates patches only the provided fields and reports whether a
// field that participates in the embedding text changed.
func applyCreatorUpdates(creator *models.Creator, req *dto.UpdateCreatorRequest) bool {
	profileChanged := false

	if req.Name != nil {
		creator.Name = *req.Name
		profileChanged = true
	}
	if req.Platform != nil {
		creator.Platform = models.Platform(*req.Platform)
		profileChanged = true
	}
	if req.FollowersCount != nil {
		creator.FollowersCount = *req.FollowersCount
		profileChanged = true
	}
	if req.FollowersCountNumeric != nil {
		creator.FollowersCountNumeric = *req.FollowersCountNumeric
	}
	if req.EngagementRate != nil {
		creator.EngagementRate = *req.EngagementRate
		profileChanged = true
	}
	if req.Niche != nil {
		creator.Niche = *req.Niche
		profileChanged = true
	}
	if req.Language != nil {
		creator.Language = *req.Language
		profileChanged = true
	}
	if req.Country != nil {
		creator.Country = *req.Country
		profileChanged = true
	}
	if req.About != nil {
		creator.About = *req.About
		profileChanged = true
	}
	if req.ChannelName != nil {
		creator.ChannelName = *req.ChannelName
		profileChanged = true
	}
	if req.AvgViews != nil {
		creator.AvgViews = *req.AvgViews
	}
	if req.CollaborationRate != nil {
		creator.CollaborationRate = *req.CollaborationRate
	}
	if req.ProfileImage != nil {
		creator.ProfileImage = *req.ProfileImage
	}

	return profileChanged
}
