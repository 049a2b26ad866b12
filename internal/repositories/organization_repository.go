package repositories

import (
	"errors"

	"refhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrOrganizationNotFound = errors.New("organization not found")

type OrganizationRepository interface {
	Create(db *gorm.DB, org *models.Organization) error
	FindByID(db *gorm.DB, id string) (*models.Organization, error)
	FindByName(db *gorm.DB, name string) (*models.Organization, error)
}

type organizationRepository struct{}

func NewOrganizationRepository() OrganizationRepository {
	return &organizationRepository{}
}

func (r *organizationRepository) Create(db *gorm.DB, org *models.Organization) error {
	return db.Create(org).Error
}

func (r *organizationRepository) FindByID(db *gorm.DB, id string) (*models.Organization, error) {
	var org models.Organization
	if err := db.First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) FindByName(db *gorm.DB, name string) (*models.Organization, error) {
	var org models.Organization
	if err := db.Where("name = ?", name).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}
