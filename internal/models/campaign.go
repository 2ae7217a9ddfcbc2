package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusPaused    CampaignStatus = "paused"
)

// Campaign is an immutable snapshot of a brand campaign from the matching
// engine's point of view; only the CRUD layer mutates it.
type Campaign struct {
	ID                 string `gorm:"primaryKey"`
	ProductName        string `gorm:"not null"`
	BrandName          string `gorm:"not null"`
	ProductDescription string
	TargetAudience     string
	KeyUseCases        datatypes.JSON `gorm:"type:jsonb"`
	CampaignGoal       string
	ProductNiche       string
	TotalBudget        float64        `gorm:"not null"`
	Status             CampaignStatus `gorm:"not null;default:draft"`
	InfluencerCount    int            `gorm:"not null;default:0"`
	CampaignCode       string         `gorm:"uniqueIndex"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Campaign) TableName() string {
	return "campaigns"
}

// GetKeyUseCases decodes the JSON use-case list, returning nil on malformed data.
func (c *Campaign) GetKeyUseCases() []string {
	var useCases []string
	if len(c.KeyUseCases) > 0 {
		json.Unmarshal(c.KeyUseCases, &useCases)
	}
	return useCases
}

// SetKeyUseCases encodes the use-case list as JSON.
func (c *Campaign) SetKeyUseCases(useCases []string) {
	if len(useCases) == 0 {
		c.KeyUseCases = datatypes.JSON("[]")
		return
	}
	data, _ := json.Marshal(useCases)
	c.KeyUseCases = datatypes.JSON(data)
}
