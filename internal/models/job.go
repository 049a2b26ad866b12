package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type JobPosting struct {
	BaseModel
	PostedBy       string  `gorm:"not null;index"`
	OrganizationID *string `gorm:"index"`
	Title          string  `gorm:"not null"`
	Description    string
	ReferralFee    decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Currency       string          `gorm:"type:varchar(3);not null"`
	Requirements   datatypes.JSON  `gorm:"type:jsonb"`
	IsActive       bool            `gorm:"default:true"`

	Referrals []ReferralRequest `gorm:"foreignKey:JobPostingID"`
}
