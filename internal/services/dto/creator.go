package dto

import (
	"time"

	"github.com/dsaidinesh/influencerflow/internal/models"
)

// ========================
// Creator DTOs
// ========================

type CreateCreatorRequest struct {
	Name                  string  `json:"name" validate:"required"`
	Email                 string  `json:"email" validate:"required,email"`
	Platform              string  `json:"platform" validate:"required,oneof=instagram youtube tiktok twitter"`
	FollowersCount        string  `json:"followers_count" validate:"required"`
	FollowersCountNumeric int64   `json:"followers_count_numeric" validate:"required,min=0"`
	EngagementRate        float64 `json:"engagement_rate" validate:"min=0,max=100"`
	Niche                 string  `json:"niche" validate:"required"`
	Language              string  `json:"language" validate:"required"`
	Country               string  `json:"country" validate:"required"`
	About                 string  `json:"about"`
	ChannelName           string  `json:"channel_name"`
	AvgViews              int64   `json:"avg_views" validate:"omitempty,min=0"`
	CollaborationRate     float64 `json:"collaboration_rate" validate:"omitempty,min=0"`
	ProfileImage          string  `json:"profile_image" validate:"omitempty,url"`
}

type UpdateCreatorRequest struct {
	Name                  *string  `json:"name"`
	Platform              *string  `json:"platform" validate:"omitempty,oneof=instagram youtube tiktok twitter"`
	FollowersCount        *string  `json:"followers_count"`
	FollowersCountNumeric *int64   `json:"followers_count_numeric" validate:"omitempty,min=0"`
	EngagementRate        *float64 `json:"engagement_rate" validate:"omitempty,min=0,max=100"`
	Niche                 *string  `json:"niche"`
	Language              *string  `json:"language"`
	Country               *string  `json:"country"`
	About                 *string  `json:"about"`
	ChannelName           *string  `json:"channel_name"`
	AvgViews              *int64   `json:"avg_views" validate:"omitempty,min=0"`
	CollaborationRate     *float64 `json:"collaboration_rate" validate:"omitempty,min=0"`
	ProfileImage          *string  `json:"profile_image" validate:"omitempty,url"`
}

type CreatorResponse struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	Platform              string    `json:"platform"`
	FollowersCount        string    `json:"followers_count"`
	FollowersCountNumeric int64     `json:"followers_count_numeric"`
	EngagementRate        float64   `json:"engagement_rate"`
	Niche                 string    `json:"niche"`
	Language              string    `json:"language"`
	Country               string    `json:"country"`
	About                 string    `json:"about,omitempty"`
	ChannelName           string    `json:"channel_name,omitempty"`
	AvgViews              int64     `json:"avg_views,omitempty"`
	CollaborationRate     float64   `json:"collaboration_rate,omitempty"`
	Rating                float64   `json:"rating,omitempty"`
	ProfileImage          string    `json:"profile_image,omitempty"`
	HasEmbedding          bool      `json:"has_embedding"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type CreatorListResponse struct {
	Creators []CreatorResponse `json:"creators"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func CreatorToResponse(creator *models.Creator) *CreatorResponse {
	return &CreatorResponse{
		ID:                    creator.ID,
		Name:                  creator.Name,
		Email:                 creator.Email,
		Platform:              string(creator.Platform),
		FollowersCount:        creator.FollowersCount,
		FollowersCountNumeric: creator.FollowersCountNumeric,
		EngagementRate:        creator.EngagementRate,
		Niche:                 creator.Niche,
		Language:              creator.Language,
		Country:               creator.Country,
		About:                 creator.About,
		ChannelName:           creator.ChannelName,
		AvgViews:              creator.AvgViews,
		CollaborationRate:     creator.CollaborationRate,
		Rating:                creator.Rating,
		ProfileImage:          creator.ProfileImage,
		HasEmbedding:          creator.HasEmbedding(),
		CreatedAt:             creator.CreatedAt,
		UpdatedAt:             creator.UpdatedAt,
	}
}
