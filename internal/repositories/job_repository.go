package repositories

import (
	"errors"

	"refhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job posting not found")

type JobRepository interface {
	Create(db *gorm.DB, job *models.JobPosting) error
	FindByID(db *gorm.DB, id string) (*models.JobPosting, error)
	ListActive(db *gorm.DB, limit, offset int) ([]models.JobPosting, error)
	ListByPoster(db *gorm.DB, userID string) ([]models.JobPosting, error)
	SetActive(db *gorm.DB, id string, active bool) error
}

type jobRepository struct{}

func NewJobRepository() JobRepository {
	return &jobRepository{}
}

func (r *jobRepository) Create(db *gorm.DB, job *models.JobPosting) error {
	return db.Create(job).Error
}

func (r *jobRepository) FindByID(db *gorm.DB, id string) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) ListActive(db *gorm.DB, limit, offset int) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	err := db.Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) ListByPoster(db *gorm.DB, userID string) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	err := db.Where("posted_by = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) SetActive(db *gorm.DB, id string, active bool) error {
	result := db.Model(&models.JobPosting{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}
