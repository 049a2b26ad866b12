package database

import (
	"fmt"

	"refhub_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate выполняет миграцию всех моделей
func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 используется в default первичных ключей
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("create uuid extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Organization{},
		&models.JobPosting{},
		&models.ReferralRequest{},
		&models.ReferralStatusHistory{},
		&models.Wallet{},
		&models.Transaction{},
		&models.Dispute{},
		&models.DomainEvent{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}
