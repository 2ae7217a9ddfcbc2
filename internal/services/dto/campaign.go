package dto

import (
	"time"

	"github.com/dsaidinesh/influencerflow/internal/models"
)

// ========================
// Campaign DTOs
// ========================

type CreateCampaignRequest struct {
	ProductName        string   `json:"product_name" validate:"required"`
	BrandName          string   `json:"brand_name" validate:"required"`
	ProductDescription string   `json:"product_description"`
	TargetAudience     string   `json:"target_audience"`
	KeyUseCases        []string `json:"key_use_cases"`
	CampaignGoal       string   `json:"campaign_goal"`
	ProductNiche       string   `json:"product_niche"`
	TotalBudget        float64  `json:"total_budget" validate:"required,min=0"`
}

type UpdateCampaignRequest struct {
	ProductName        *string  `json:"product_name"`
	BrandName          *string  `json:"brand_name"`
	ProductDescription *string  `json:"product_description"`
	TargetAudience     *string  `json:"target_audience"`
	KeyUseCases        []string `json:"key_use_cases"`
	CampaignGoal       *string  `json:"campaign_goal"`
	ProductNiche       *string  `json:"product_niche"`
	TotalBudget        *float64 `json:"total_budget" validate:"omitempty,min=0"`
	Status             *string  `json:"status" validate:"omitempty,oneof=draft active completed paused"`
}

type CampaignResponse struct {
	ID                 string    `json:"id"`
	ProductName        string    `json:"product_name"`
	BrandName          string    `json:"brand_name"`
	ProductDescription string    `json:"product_description,omitempty"`
	TargetAudience     string    `json:"target_audience,omitempty"`
	KeyUseCases        []string  `json:"key_use_cases"`
	CampaignGoal       string    `json:"campaign_goal,omitempty"`
	ProductNiche       string    `json:"product_niche,omitempty"`
	TotalBudget        float64   `json:"total_budget"`
	Status             string    `json:"status"`
	InfluencerCount    int       `json:"influencer_count"`
	CampaignCode       string    `json:"campaign_code,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type CampaignListResponse struct {
	Campaigns []CampaignResponse `json:"campaigns"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
}

func CampaignToResponse(campaign *models.Campaign) *CampaignResponse {
	return &CampaignResponse{
		ID:                 campaign.ID,
		ProductName:        campaign.ProductName,
		BrandName:          campaign.BrandName,
		ProductDescription: campaign.ProductDescription,
		TargetAudience:     campaign.TargetAudience,
		KeyUseCases:        campaign.GetKeyUseCases(),
		CampaignGoal:       campaign.CampaignGoal,
		ProductNiche:       campaign.ProductNiche,
		TotalBudget:        campaign.TotalBudget,
		Status:             string(campaign.Status),
		InfluencerCount:    campaign.InfluencerCount,
		CampaignCode:       campaign.CampaignCode,
		CreatedAt:          campaign.CreatedAt,
		UpdatedAt:          campaign.UpdatedAt,
	}
}
