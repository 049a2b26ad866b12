package services

import (
	"encoding/json"

	"refhub_backend/internal/logger"
	"refhub_backend/internal/models"
	"refhub_backend/internal/repositories"

	"gorm.io/gorm"
)

// EventService записывает исходящие доменные события.
// Доставкой (email, push, внешний аудит) занимается отдельный
// потребитель; ядро никому ничего не шлет само.
type EventService interface {
	ReferralStatusChanged(db *gorm.DB, referral *models.ReferralRequest, from models.ReferralStatus, actorID string) error
	DisputeOpened(db *gorm.DB, dispute *models.Dispute) error
	DisputeResolved(db *gorm.DB, dispute *models.Dispute, outcome models.DisputeOutcome) error
	TransactionCompleted(db *gorm.DB, tx *models.Transaction) error
	UserRegistered(db *gorm.DB, user *models.User, verificationToken string) error
	UserVerified(db *gorm.DB, user *models.User) error
}

type EventServiceImpl struct {
	eventRepo repositories.EventRepository
}

func NewEventService(eventRepo repositories.EventRepository) EventService {
	return &EventServiceImpl{eventRepo: eventRepo}
}

func (s *EventServiceImpl) record(db *gorm.DB, eventType models.EventType, userID, referralID *string, payload map[string]interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := &models.DomainEvent{
		Type:              eventType,
		UserID:            userID,
		ReferralRequestID: referralID,
		Payload:           raw,
	}

	if err := s.eventRepo.Create(db, event); err != nil {
		return err
	}

	logger.Debug("domain event recorded", "type", string(eventType))
	return nil
}

func (s *EventServiceImpl) ReferralStatusChanged(db *gorm.DB, referral *models.ReferralRequest, from models.ReferralStatus, actorID string) error {
	return s.record(db, models.EventReferralStatusChanged, nil, &referral.ID, map[string]interface{}{
		"from":           string(from),
		"to":             string(referral.Status),
		"payment_status": string(referral.PaymentStatus),
		"actor_id":       actorID,
	})
}

func (s *EventServiceImpl) DisputeOpened(db *gorm.DB, dispute *models.Dispute) error {
	return s.record(db, models.EventDisputeOpened, &dispute.ClaimantID, &dispute.ReferralRequestID, map[string]interface{}{
		"dispute_id": dispute.ID,
		"reason":     dispute.Reason,
	})
}

func (s *EventServiceImpl) DisputeResolved(db *gorm.DB, dispute *models.Dispute, outcome models.DisputeOutcome) error {
	return s.record(db, models.EventDisputeResolved, dispute.ResolvedByAdminID, &dispute.ReferralRequestID, map[string]interface{}{
		"dispute_id": dispute.ID,
		"outcome":    string(outcome),
	})
}

func (s *EventServiceImpl) TransactionCompleted(db *gorm.DB, tx *models.Transaction) error {
	return s.record(db, models.EventTransactionCompleted, nil, tx.ReferralRequestID, map[string]interface{}{
		"transaction_id": tx.ID,
		"wallet_id":      tx.WalletID,
		"amount":         tx.Amount.StringFixed(4),
		"type":           string(tx.Type),
	})
}

// UserRegistered несет сырой токен верификации: его доставляет
// пользователю внешний потребитель событий (мейлер). В таблицу
// users попадает только хеш.
func (s *EventServiceImpl) UserRegistered(db *gorm.DB, user *models.User, verificationToken string) error {
	return s.record(db, models.EventUserRegistered, &user.ID, nil, map[string]interface{}{
		"email":              user.Email,
		"role":               string(user.Role),
		"verification_token": verificationToken,
	})
}

func (s *EventServiceImpl) UserVerified(db *gorm.DB, user *models.User) error {
	return s.record(db, models.EventUserVerified, &user.ID, nil, map[string]interface{}{
		"email": user.Email,
	})
}
