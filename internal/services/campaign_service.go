package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dsaidinesh/influencerflow/internal/logger"
	"github.com/dsaidinesh/influencerflow/internal/models"
	"github.com/dsaidinesh/influencerflow/internal/repositories"
	"github.com/dsaidinesh/influencerflow/internal/services/dto"
	"github.com/dsaidinesh/influencerflow/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignService interface {
	CreateCampaign(ctx context.Context, db *gorm.DB, req *dto.CreateCampaignRequest) (*dto.CampaignResponse, error)
	GetCampaign(ctx context.Context, db *gorm.DB, id string) (*dto.CampaignResponse, error)
	UpdateCampaign(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateCampaignRequest) (*dto.CampaignResponse, error)
	DeleteCampaign(ctx context.Context, db *gorm.DB, id string) error
	ListCampaigns(ctx context.Context, db *gorm.DB, criteria repositories.CampaignSearchCriteria) (*dto.CampaignListResponse, error)
}

type CampaignServiceImpl struct {
	campaignRepo repositories.CampaignRepository
}

func NewCampaignService(campaignRepo repositories.CampaignRepository) CampaignService {
	return &CampaignServiceImpl{campaignRepo: campaignRepo}
}

func (s *CampaignServiceImpl) CreateCampaign(ctx context.Context, db *gorm.DB, req *dto.CreateCampaignRequest) (*dto.CampaignResponse, error) {
	id := uuid.NewString()

	campaign := &models.Campaign{
		ID:                 id,
		ProductName:        req.ProductName,
		BrandName:          req.BrandName,
		ProductDescription: req.ProductDescription,
		TargetAudience:     req.TargetAudience,
		CampaignGoal:       req.CampaignGoal,
		ProductNiche:       req.ProductNiche,
		TotalBudget:        req.TotalBudget,
		Status:             models.CampaignStatusDraft,
		CampaignCode:       generateCampaignCode(id),
	}
	campaign.SetKeyUseCases(req.KeyUseCases)

	if err := s.campaignRepo.Create(db, campaign); err != nil {
		if errors.Is(err, repositories.ErrCampaignCodeExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Campaign created", "campaign_id", campaign.ID, "code", campaign.CampaignCode)
	return dto.CampaignToResponse(campaign), nil
}

func (s *CampaignServiceImpl) GetCampaign(ctx context.Context, db *gorm.DB, id string) (*dto.CampaignResponse, error) {
	campaign, err := s.campaignRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, apperrors.ErrCampaignNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.CampaignToResponse(campaign), nil
}

func (s *CampaignServiceImpl) UpdateCampaign(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateCampaignRequest) (*dto.CampaignResponse, error) {
	campaign, err := s.campaignRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, apperrors.ErrCampaignNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Status != nil {
		if err := validateStatusTransition(campaign.Status, models.CampaignStatus(*req.Status)); err != nil {
			return nil, err
		}
		campaign.Status = models.CampaignStatus(*req.Status)
	}
	if req.ProductName != nil {
		campaign.ProductName = *req.ProductName
	}
	if req.BrandName != nil {
		campaign.BrandName = *req.BrandName
	}
	if req.ProductDescription != nil {
		campaign.ProductDescription = *req.ProductDescription
	}
	if req.TargetAudience != nil {
		campaign.TargetAudience = *req.TargetAudience
	}
	if req.KeyUseCases != nil {
		campaign.SetKeyUseCases(req.KeyUseCases)
	}
	if req.CampaignGoal != nil {
		campaign.CampaignGoal = *req.CampaignGoal
	}
	if req.ProductNiche != nil {
		campaign.ProductNiche = *req.ProductNiche
	}
	if req.TotalBudget != nil {
		campaign.TotalBudget = *req.TotalBudget
	}

	if err := s.campaignRepo.Update(db, campaign); err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, apperrors.ErrCampaignNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Campaign updated", "campaign_id", id)
	return s.GetCampaign(ctx, db, id)
}

func (s *CampaignServiceImpl) DeleteCampaign(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.campaignRepo.Delete(db, id); err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return apperrors.ErrCampaignNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Campaign deleted", "campaign_id", id)
	return nil
}

func (s *CampaignServiceImpl) ListCampaigns(ctx context.Context, db *gorm.DB, criteria repositories.CampaignSearchCriteria) (*dto.CampaignListResponse, error) {
	campaigns, total, err := s.campaignRepo.Search(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		responses = append(responses, *dto.CampaignToResponse(&campaigns[i]))
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.CampaignListResponse{
		Campaigns: responses,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

// validateStatusTransition rejects moves out of a terminal status.
func validateStatusTransition(from, to models.CampaignStatus) error {
	if from == models.CampaignStatusCompleted && to != models.CampaignStatusCompleted {
		return apperrors.ErrInvalidCampaignStatus
	}
	return nil
}

// generateCampaignCode derives a short human-shareable code from the campaign ID.
func generateCampaignCode(id string) string {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) > 8 {
		compact = compact[:8]
	}
	return fmt.Sprintf("CAMP-%s", strings.ToUpper(compact))
}
