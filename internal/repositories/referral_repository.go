package repositories

import (
	"errors"

	"refhub_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrReferralNotFound = errors.New("referral request not found")

type ReferralRepository interface {
	Create(db *gorm.DB, referral *models.ReferralRequest) error
	FindByID(db *gorm.DB, id string) (*models.ReferralRequest, error)

	// FindByIDForUpdate берет строку под SELECT ... FOR UPDATE.
	// Вызывается только внутри транзакции: конкурирующие переходы
	// по одному рефералу сериализуются на этой блокировке.
	FindByIDForUpdate(db *gorm.DB, id string) (*models.ReferralRequest, error)

	UpdateStatus(db *gorm.DB, id string, status models.ReferralStatus, payment models.PaymentStatus) error
	AppendHistory(db *gorm.DB, entry *models.ReferralStatusHistory) error
	HistoryByReferralID(db *gorm.DB, referralID string) ([]models.ReferralStatusHistory, error)
	ListByParticipant(db *gorm.DB, userID string) ([]models.ReferralRequest, error)
}

type referralRepository struct{}

func NewReferralRepository() ReferralRepository {
	return &referralRepository{}
}

func (r *referralRepository) Create(db *gorm.DB, referral *models.ReferralRequest) error {
	return db.Create(referral).Error
}

func (r *referralRepository) FindByID(db *gorm.DB, id string) (*models.ReferralRequest, error) {
	var referral models.ReferralRequest
	if err := db.First(&referral, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}
	return &referral, nil
}

func (r *referralRepository) FindByIDForUpdate(db *gorm.DB, id string) (*models.ReferralRequest, error) {
	var referral models.ReferralRequest
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&referral, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}
	return &referral, nil
}

func (r *referralRepository) UpdateStatus(db *gorm.DB, id string, status models.ReferralStatus, payment models.PaymentStatus) error {
	result := db.Model(&models.ReferralRequest{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":         status,
		"payment_status": payment,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReferralNotFound
	}
	return nil
}

func (r *referralRepository) AppendHistory(db *gorm.DB, entry *models.ReferralStatusHistory) error {
	return db.Create(entry).Error
}

func (r *referralRepository) HistoryByReferralID(db *gorm.DB, referralID string) ([]models.ReferralStatusHistory, error) {
	var history []models.ReferralStatusHistory
	err := db.Where("referral_request_id = ?", referralID).
		Order("created_at ASC").
		Find(&history).Error
	return history, err
}

func (r *referralRepository) ListByParticipant(db *gorm.DB, userID string) ([]models.ReferralRequest, error) {
	var referrals []models.ReferralRequest
	err := db.Where("job_seeker_id = ? OR employee_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&referrals).Error
	return referrals, err
}
