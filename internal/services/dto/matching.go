package dto

import (
	"github.com/dsaidinesh/influencerflow/internal/models"
)

// ========================
// Matching DTOs
// ========================

// SimilaritySearchRequest carries full campaign fields for ad hoc matching.
type SimilaritySearchRequest struct {
	ProductName        string   `json:"product_name" validate:"required"`
	Brand              string   `json:"brand" validate:"required"`
	ProductDescription string   `json:"product_description" validate:"required"`
	TargetAudience     string   `json:"target_audience" validate:"required"`
	KeyUsecases        []string `json:"key_usecases" validate:"required,min=1"`
	CampaignGoal       string   `json:"campaign_goal" validate:"required"`
	ProductNiche       string   `json:"product_niche" validate:"required"`
	TotalBudget        float64  `json:"total_budget" validate:"required,min=0"`
}

// CampaignSimilarityRequest matches against a stored campaign.
type CampaignSimilarityRequest struct {
	CampaignID     string  `json:"campaign_id" validate:"required"`
	MatchThreshold float64 `json:"match_threshold" validate:"omitempty,min=0,max=1"`
	MatchCount     int     `json:"match_count" validate:"omitempty,min=1,max=100"`
}

// DetailedScores is the per-factor breakdown, each formatted "NN.NN%".
type DetailedScores struct {
	NicheMatch      string `json:"niche_match"`
	AudienceMatch   string `json:"audience_match"`
	EngagementScore string `json:"engagement_score"`
	BudgetFit       string `json:"budget_fit"`
}

// InfluencerMatch is one ranked result. Fallback results carry exactly the
// same field set so callers cannot distinguish them structurally.
type InfluencerMatch struct {
	ID                string         `json:"id"`
	InfluencerName    string         `json:"influencer_name"`
	MatchScore        string         `json:"match_score"`
	Niche             string         `json:"niche"`
	Followers         string         `json:"followers"`
	Engagement        string         `json:"engagement"`
	CollaborationRate string         `json:"collaboration_rate"`
	DetailedScores    DetailedScores `json:"detailed_scores"`
}

// SimilaritySearchResponse is the envelope for every matching endpoint.
type SimilaritySearchResponse struct {
	Matches          []InfluencerMatch      `json:"matches"`
	TotalMatches     int                    `json:"total_matches"`
	SearchParameters map[string]interface{} `json:"search_parameters"`
}

// MatchingCampaign is the campaign snapshot the matching pipeline operates
// on, decoupled from both the persistence model and the request shape.
type MatchingCampaign struct {
	ProductName        string
	BrandName          string
	ProductDescription string
	TargetAudience     string
	KeyUseCases        []string
	CampaignGoal       string
	ProductNiche       string
	TotalBudget        float64
}

func CampaignToMatchingDTO(campaign *models.Campaign) *MatchingCampaign {
	return &MatchingCampaign{
		ProductName:        campaign.ProductName,
		BrandName:          campaign.BrandName,
		ProductDescription: campaign.ProductDescription,
		TargetAudience:     campaign.TargetAudience,
		KeyUseCases:        campaign.GetKeyUseCases(),
		CampaignGoal:       campaign.CampaignGoal,
		ProductNiche:       campaign.ProductNiche,
		TotalBudget:        campaign.TotalBudget,
	}
}

func RequestToMatchingDTO(req *SimilaritySearchRequest) *MatchingCampaign {
	return &MatchingCampaign{
		ProductName:        req.ProductName,
		BrandName:          req.Brand,
		ProductDescription: req.ProductDescription,
		TargetAudience:     req.TargetAudience,
		KeyUseCases:        req.KeyUsecases,
		CampaignGoal:       req.CampaignGoal,
		ProductNiche:       req.ProductNiche,
		TotalBudget:        req.TotalBudget,
	}
}
