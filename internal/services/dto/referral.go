package dto

import (
	"time"

	"refhub_backend/internal/models"
)

// CreateReferralRequest - соискатель просит сотрудника о реферале
type CreateReferralRequest struct {
	JobPostingID string `json:"job_posting_id" binding:"required,uuid"`
	EmployeeID   string `json:"employee_id" binding:"required,uuid"`
	ResumeURL    string `json:"resume_url,omitempty" binding:"omitempty,url"`
}

// TransitionNoteRequest - опциональная заметка при смене статуса
type TransitionNoteRequest struct {
	Note string `json:"note,omitempty" binding:"omitempty,max=1000"`
}

// ReferralResponse - реферал в ответе API
type ReferralResponse struct {
	ID            string                `json:"id"`
	JobPostingID  string                `json:"job_posting_id"`
	JobSeekerID   string                `json:"job_seeker_id"`
	EmployeeID    string                `json:"employee_id"`
	Status        models.ReferralStatus `json:"status"`
	PaymentStatus models.PaymentStatus  `json:"payment_status"`
	ResumeURL     string                `json:"resume_url,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// HistoryEntry - одна запись журнала статусов
type HistoryEntry struct {
	FromStatus models.ReferralStatus `json:"from_status,omitempty"`
	ToStatus   models.ReferralStatus `json:"to_status"`
	ActorID    string                `json:"actor_id"`
	Note       string                `json:"note,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

// NewReferralResponse собирает ответ из модели
func NewReferralResponse(r *models.ReferralRequest) *ReferralResponse {
	return &ReferralResponse{
		ID:            r.ID,
		JobPostingID:  r.JobPostingID,
		JobSeekerID:   r.JobSeekerID,
		EmployeeID:    r.EmployeeID,
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		ResumeURL:     r.ResumeURL,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
