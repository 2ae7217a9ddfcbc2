package database

import (
	"fmt"

	"github.com/dsaidinesh/influencerflow/internal/logger"
	"github.com/dsaidinesh/influencerflow/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates the schema for all models. The pgvector extension must
// exist before the similarity query's ::vector casts can work, so it is
// installed first.
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("failed to ensure pgvector extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.Creator{},
		&models.Campaign{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	logger.Info("AutoMigrate completed")
	return nil
}
