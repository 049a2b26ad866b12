package repositories

import (
	"errors"

	"refhub_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrDisputeNotFound      = errors.New("dispute not found")
	ErrDisputeAlreadyExists = errors.New("dispute already exists for referral")
	ErrDisputeNotOpen       = errors.New("dispute is not open")
)

type DisputeRepository interface {
	Create(db *gorm.DB, dispute *models.Dispute) error
	FindByID(db *gorm.DB, id string) (*models.Dispute, error)
	// FindByIDForUpdate берет строку спора под SELECT ... FOR UPDATE.
	// Резолюция держит этот lock вместе с lock'ом реферала.
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Dispute, error)
	FindByReferralID(db *gorm.DB, referralID string) (*models.Dispute, error)
	MarkResolved(db *gorm.DB, dispute *models.Dispute) error
	ListOpen(db *gorm.DB, limit, offset int) ([]models.Dispute, error)
}

type disputeRepository struct{}

func NewDisputeRepository() DisputeRepository {
	return &disputeRepository{}
}

// Create создает спор. "Один спор на реферал" закрыт uniqueIndex'ом
// на referral_request_id, а не только проверкой в сервисе.
func (r *disputeRepository) Create(db *gorm.DB, dispute *models.Dispute) error {
	if err := db.Create(dispute).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDisputeAlreadyExists
		}
		return err
	}
	return nil
}

func (r *disputeRepository) FindByID(db *gorm.DB, id string) (*models.Dispute, error) {
	var dispute models.Dispute
	if err := db.First(&dispute, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDisputeNotFound
		}
		return nil, err
	}
	return &dispute, nil
}

func (r *disputeRepository) FindByIDForUpdate(db *gorm.DB, id string) (*models.Dispute, error) {
	var dispute models.Dispute
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dispute, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDisputeNotFound
		}
		return nil, err
	}
	return &dispute, nil
}

func (r *disputeRepository) FindByReferralID(db *gorm.DB, referralID string) (*models.Dispute, error) {
	var dispute models.Dispute
	err := db.Where("referral_request_id = ?", referralID).First(&dispute).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDisputeNotFound
		}
		return nil, err
	}
	return &dispute, nil
}

// MarkResolved закрывает спор compare-and-swap'ом по статусу:
// обновляется только строка, которая все еще open. Проигравший из
// двух одновременных резолюций получает ErrDisputeNotOpen и не
// затирает решение победителя.
func (r *disputeRepository) MarkResolved(db *gorm.DB, dispute *models.Dispute) error {
	result := db.Model(&models.Dispute{}).
		Where("id = ? AND status = ?", dispute.ID, models.DisputeStatusOpen).
		Updates(map[string]interface{}{
			"status":               dispute.Status,
			"resolved_by_admin_id": dispute.ResolvedByAdminID,
			"resolved_at":          dispute.ResolvedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDisputeNotOpen
	}
	return nil
}

func (r *disputeRepository) ListOpen(db *gorm.DB, limit, offset int) ([]models.Dispute, error) {
	var disputes []models.Dispute
	err := db.Where("status = ?", models.DisputeStatusOpen).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&disputes).Error
	return disputes, err
}
