package models

import (
	"time"

	"github.com/lib/pq"
)

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
)

// Creator is an influencer profile eligible for campaign matching.
// EmbeddingVector is nullable: creators without an embedding are excluded
// from similarity search but still served by CRUD and fallback paths.
type Creator struct {
	ID                   string   `gorm:"primaryKey"`
	Name                 string   `gorm:"not null"`
	Email                string   `gorm:"uniqueIndex;not null"`
	Platform             Platform `gorm:"not null"`
	FollowersCount       string   `gorm:"not null"` // display format, e.g. "374K"
	FollowersCountNumeric int64   `gorm:"not null"`
	EngagementRate       float64  `gorm:"not null"` // percentage, 0-100
	Niche                string   `gorm:"not null"`
	Language             string   `gorm:"not null"`
	Country              string   `gorm:"not null"`
	About                string
	ChannelName          string
	AvgViews             int64
	CollaborationRate    float64 // quoted rate per collaboration, USD
	Rating               float64
	ProfileImage         string
	EmbeddingVector      pq.Float64Array `gorm:"type:float8[]" json:"-"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (Creator) TableName() string {
	return "creators"
}

// HasEmbedding reports whether the creator can participate in similarity search.
func (c *Creator) HasEmbedding() bool {
	return len(c.EmbeddingVector) > 0
}
