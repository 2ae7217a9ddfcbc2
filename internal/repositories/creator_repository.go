package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dsaidinesh/influencerflow/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrCreatorNotFound      = errors.New("creator not found")
	ErrCreatorAlreadyExists = errors.New("creator already exists with this email")
)

// MatchCandidate is a similarity-search hit: a creator ID plus its cosine
// similarity against the query vector. The store returns candidates in
// descending similarity order with similarity already inside [0,1].
type MatchCandidate struct {
	CreatorID  string  `gorm:"column:creator_id"`
	Similarity float64 `gorm:"column:similarity"`
}

type CreatorSearchCriteria struct {
	Platform      string   `form:"platform"`
	Niche         string   `form:"niche"`
	Country       string   `form:"country"`
	MinFollowers  *int64   `form:"min_followers"`
	MaxFollowers  *int64   `form:"max_followers"`
	MinEngagement *float64 `form:"min_engagement"`
	Page          int      `form:"page" binding:"omitempty,min=1"`
	PageSize      int      `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type CreatorRepository interface {
	Create(db *gorm.DB, creator *models.Creator) error
	FindByID(db *gorm.DB, id string) (*models.Creator, error)
	Update(db *gorm.DB, creator *models.Creator) error
	Delete(db *gorm.DB, id string) error
	Search(db *gorm.DB, criteria CreatorSearchCriteria) ([]models.Creator, int64, error)

	// Embedding operations
	UpdateEmbedding(db *gorm.DB, creatorID string, vector []float64) error
	FindMissingEmbeddings(db *gorm.DB, limit int) ([]models.Creator, error)
	MatchByEmbedding(db *gorm.DB, vector []float64, threshold float64, count int) ([]MatchCandidate, error)
}

type CreatorRepositoryImpl struct{}

func NewCreatorRepository() CreatorRepository {
	return &CreatorRepositoryImpl{}
}

func (r *CreatorRepositoryImpl) Create(db *gorm.DB, creator *models.Creator) error {
	var existing models.Creator
	if err := db.Where("email = ?", creator.Email).First(&existing).Error; err == nil {
		return ErrCreatorAlreadyExists
	}

	return db.Create(creator).Error
}

func (r *CreatorRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Creator, error) {
	var creator models.Creator
	err := db.First(&creator, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, err
	}
	return &creator, nil
}

func (r *CreatorRepositoryImpl) Update(db *gorm.DB, creator *models.Creator) error {
	result := db.Model(&models.Creator{}).Where("id = ?", creator.ID).Updates(creator)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreatorNotFound
	}
	return nil
}

func (r *CreatorRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Creator{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreatorNotFound
	}
	return nil
}

func (r *CreatorRepositoryImpl) Search(db *gorm.DB, criteria CreatorSearchCriteria) ([]models.Creator, int64, error) {
	query := db.Model(&models.Creator{})

	if criteria.Platform != "" {
		query = query.Where("platform = ?", criteria.Platform)
	}
	if criteria.Niche != "" {
		query = query.Where("niche = ?", criteria.Niche)
	}
	if criteria.Country != "" {
		query = query.Where("country = ?", criteria.Country)
	}
	if criteria.MinFollowers != nil {
		query = query.Where("followers_count_numeric >= ?", *criteria.MinFollowers)
	}
	if criteria.MaxFollowers != nil {
		query = query.Where("followers_count_numeric <= ?", *criteria.MaxFollowers)
	}
	if criteria.MinEngagement != nil {
		query = query.Where("engagement_rate >= ?", *criteria.MinEngagement)
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

	var creators []models.Creator
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&creators).Error
	if err != nil {
		return nil, 0, err
	}

	return creators, total, nil
}

func (r *CreatorRepositoryImpl) UpdateEmbedding(db *gorm.DB, creatorID string, vector []float64) error {
	result := db.Model(&models.Creator{}).
		Where("id = ?", creatorID).
		Update("embedding_vector", pq.Float64Array(vector))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreatorNotFound
	}
	return nil
}

func (r *CreatorRepositoryImpl) FindMissingEmbeddings(db *gorm.DB, limit int) ([]models.Creator, error) {
	var creators []models.Creator
	err := db.
		Where("embedding_vector IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&creators).Error
	return creators, err
}

// MatchByEmbedding delegates nearest-neighbor search to pgvector. Candidates
// below the threshold are filtered out and the store orders by similarity
// descending; an empty result set is a valid outcome, not an error.
func (r *CreatorRepositoryImpl) MatchByEmbedding(db *gorm.DB, vector []float64, threshold float64, count int) ([]MatchCandidate, error) {
	if count <= 0 {
		return nil, nil
	}

	literal := VectorLiteral(vector)

	var candidates []MatchCandidate
	err := db.Raw(`
		SELECT id AS creator_id,
		       1 - (embedding_vector::vector <=> ?::vector) AS similarity
		FROM creators
		WHERE embedding_vector IS NOT NULL
		  AND 1 - (embedding_vector::vector <=> ?::vector) >= ?
		ORDER BY similarity DESC
		LIMIT ?
	`, literal, literal, threshold, count).Scan(&candidates).Error
	if err != nil {
		return nil, err
	}

	return candidates, nil
}

// VectorLiteral renders a float slice as a pgvector input literal, e.g. "[0.1,0.2]".
func VectorLiteral(vector []float64) string {
	parts := make([]string, len(vector))
	for i, v := range vector {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ","))
}
