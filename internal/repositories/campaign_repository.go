package repositories

import (
	"errors"

	"github.com/dsaidinesh/influencerflow/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrCampaignCodeExists = errors.New("campaign code already in use")
)

type CampaignSearchCriteria struct {
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type CampaignRepository interface {
	Create(db *gorm.DB, campaign *models.Campaign) error
	FindByID(db *gorm.DB, id string) (*models.Campaign, error)
	Update(db *gorm.DB, campaign *models.Campaign) error
	Delete(db *gorm.DB, id string) error
	Search(db *gorm.DB, criteria CampaignSearchCriteria) ([]models.Campaign, int64, error)
}

type CampaignRepositoryImpl struct{}

func NewCampaignRepository() CampaignRepository {
	return &CampaignRepositoryImpl{}
}

func (r *CampaignRepositoryImpl) Create(db *gorm.DB, campaign *models.Campaign) error {
	if campaign.CampaignCode != "" {
		var existing models.Campaign
		if err := db.Where("campaign_code = ?", campaign.CampaignCode).First(&existing).Error; err == nil {
			return ErrCampaignCodeExists
		}
	}

	return db.Create(campaign).Error
}

func (r *CampaignRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := db.First(&campaign, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return &campaign, nil
}

func (r *CampaignRepositoryImpl) Update(db *gorm.DB, campaign *models.Campaign) error {
	result := db.Model(&models.Campaign{}).Where("id = ?", campaign.ID).Updates(campaign)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

func (r *CampaignRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Campaign{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

func (r *CampaignRepositoryImpl) Search(db *gorm.DB, criteria CampaignSearchCriteria) ([]models.Campaign, int64, error) {
	query := db.Model(&models.Campaign{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var campaigns []models.Campaign
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&campaigns).Error
	if err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}
