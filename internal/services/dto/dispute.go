package dto

import (
	"time"

	"refhub_backend/internal/models"

	"gorm.io/datatypes"
)

// OpenDisputeRequest - открытие спора участником реферала
type OpenDisputeRequest struct {
	Reason   string         `json:"reason" binding:"required"`
	Evidence datatypes.JSON `json:"evidence,omitempty"`
}

// ResolveDisputeRequest - решение спора администратором
type ResolveDisputeRequest struct {
	Outcome models.DisputeOutcome `json:"outcome" binding:"required,oneof=favor_seeker favor_employee"`
	Note    string                `json:"note,omitempty"`
}

// DisputeResponse - спор в ответе API
type DisputeResponse struct {
	ID                string               `json:"id"`
	ReferralRequestID string               `json:"referral_request_id"`
	ClaimantID        string               `json:"claimant_id"`
	Reason            string               `json:"reason"`
	Status            models.DisputeStatus `json:"status"`
	ResolvedByAdminID *string              `json:"resolved_by_admin_id,omitempty"`
	ResolvedAt        *time.Time           `json:"resolved_at,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

func NewDisputeResponse(d *models.Dispute) *DisputeResponse {
	return &DisputeResponse{
		ID:                d.ID,
		ReferralRequestID: d.ReferralRequestID,
		ClaimantID:        d.ClaimantID,
		Reason:            d.Reason,
		Status:            d.Status,
		ResolvedByAdminID: d.ResolvedByAdminID,
		ResolvedAt:        d.ResolvedAt,
		CreatedAt:         d.CreatedAt,
	}
}
