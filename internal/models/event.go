package models

import "gorm.io/datatypes"

type EventType string

const (
	EventReferralStatusChanged EventType = "referral_status_changed"
	EventDisputeOpened         EventType = "dispute_opened"
	EventDisputeResolved       EventType = "dispute_resolved"
	EventTransactionCompleted  EventType = "transaction_completed"
	EventUserRegistered        EventType = "user_registered"
	EventUserVerified          EventType = "user_verified"
)

// DomainEvent - исходящее доменное событие. Ядро только записывает
// события, доставкой (email, push, аудит) занимается внешний потребитель.
type DomainEvent struct {
	BaseModel
	Type              EventType      `gorm:"type:varchar(40);not null;index"`
	UserID            *string        `gorm:"index"`
	ReferralRequestID *string        `gorm:"index"`
	Payload           datatypes.JSON `gorm:"type:jsonb"`
}
