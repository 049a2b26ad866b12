package repositories

import (
	"refhub_backend/internal/models"

	"gorm.io/gorm"
)

// EventRepository пишет исходящие доменные события.
// Читает их внешний потребитель (аудит/нотификации), ядро только пишет.
type EventRepository interface {
	Create(db *gorm.DB, event *models.DomainEvent) error
	ListByReferral(db *gorm.DB, referralID string) ([]models.DomainEvent, error)
}

type eventRepository struct{}

func NewEventRepository() EventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(db *gorm.DB, event *models.DomainEvent) error {
	return db.Create(event).Error
}

func (r *eventRepository) ListByReferral(db *gorm.DB, referralID string) ([]models.DomainEvent, error) {
	var events []models.DomainEvent
	err := db.Where("referral_request_id = ?", referralID).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}
