package models

import (
	"time"

	"gorm.io/datatypes"
)

// Dispute - спор по рефералу. Не более одного спора на реферал.
type Dispute struct {
	BaseModel
	ReferralRequestID string        `gorm:"not null;uniqueIndex"`
	ClaimantID        string        `gorm:"not null;index"`
	Reason            string        `gorm:"not null"`
	Evidence          datatypes.JSON `gorm:"type:jsonb"`
	Status            DisputeStatus `gorm:"type:varchar(30);not null;default:'open'"`
	ResolvedByAdminID *string
	ResolvedAt        *time.Time
}
