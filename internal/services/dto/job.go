package dto

import (
	"time"

	"gorm.io/datatypes"
)

// CreateJobRequest - создание вакансии.
// ReferralFee строкой: парсится в decimal без потери точности.
type CreateJobRequest struct {
	Title          string         `json:"title" binding:"required"`
	Description    string         `json:"description"`
	OrganizationID *string        `json:"organization_id,omitempty"`
	ReferralFee    string         `json:"referral_fee" binding:"required" validate:"money"`
	Currency       string         `json:"currency" binding:"required" validate:"currency_code"`
	Requirements   datatypes.JSON `json:"requirements,omitempty"`
}

// JobResponse - вакансия в ответе API
type JobResponse struct {
	ID             string         `json:"id"`
	PostedBy       string         `json:"posted_by"`
	OrganizationID *string        `json:"organization_id,omitempty"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	ReferralFee    string         `json:"referral_fee"`
	Currency       string         `json:"currency"`
	Requirements   datatypes.JSON `json:"requirements,omitempty"`
	IsActive       bool           `json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
}
