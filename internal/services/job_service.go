package services

import (
	"refhub_backend/internal/appErrors"
	"refhub_backend/internal/auth"
	"refhub_backend/internal/models"
	"refhub_backend/internal/repositories"
	"refhub_backend/internal/services/dto"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type JobService interface {
	Create(db *gorm.DB, actor auth.Actor, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	Get(db *gorm.DB, id string) (*dto.JobResponse, error)
	ListActive(db *gorm.DB, limit, offset int) ([]dto.JobResponse, error)
	Deactivate(db *gorm.DB, actor auth.Actor, id string) error
}

type JobServiceImpl struct {
	jobRepo repositories.JobRepository
}

func NewJobService(jobRepo repositories.JobRepository) JobService {
	return &JobServiceImpl{jobRepo: jobRepo}
}

// Create - публикация вакансии. Публикуют сотрудники и админы.
func (s *JobServiceImpl) Create(db *gorm.DB, actor auth.Actor, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if actor.Role != models.UserRoleEmployee && !actor.IsAdmin() {
		return nil, appErrors.ErrForbidden
	}

	fee, err := decimal.NewFromString(req.ReferralFee)
	if err != nil || !fee.IsPositive() {
		return nil, appErrors.NewBadRequestError("referral_fee must be a positive decimal amount")
	}

	job := &models.JobPosting{
		PostedBy:       actor.UserID,
		OrganizationID: req.OrganizationID,
		Title:          req.Title,
		Description:    req.Description,
		ReferralFee:    fee.Round(4),
		Currency:       req.Currency,
		Requirements:   req.Requirements,
		IsActive:       true,
	}

	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	return buildJobResponse(job), nil
}

func (s *JobServiceImpl) Get(db *gorm.DB, id string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(db, id)
	if err != nil {
		if appErrors.Is(err, repositories.ErrJobNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, appErrors.DatabaseError(err)
	}
	return buildJobResponse(job), nil
}

func (s *JobServiceImpl) ListActive(db *gorm.DB, limit, offset int) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.ListActive(db, limit, offset)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, *buildJobResponse(&jobs[i]))
	}
	return responses, nil
}

// Deactivate снимает вакансию. Разрешено автору и админу.
func (s *JobServiceImpl) Deactivate(db *gorm.DB, actor auth.Actor, id string) error {
	job, err := s.jobRepo.FindByID(db, id)
	if err != nil {
		if appErrors.Is(err, repositories.ErrJobNotFound) {
			return appErrors.ErrJobNotFound
		}
		return appErrors.DatabaseError(err)
	}

	if job.PostedBy != actor.UserID && !actor.IsAdmin() {
		return appErrors.ErrForbidden
	}

	if err := s.jobRepo.SetActive(db, id, false); err != nil {
		return appErrors.DatabaseError(err)
	}
	return nil
}

func buildJobResponse(job *models.JobPosting) *dto.JobResponse {
	return &dto.JobResponse{
		ID:             job.ID,
		PostedBy:       job.PostedBy,
		OrganizationID: job.OrganizationID,
		Title:          job.Title,
		Description:    job.Description,
		ReferralFee:    job.ReferralFee.StringFixed(4),
		Currency:       job.Currency,
		Requirements:   job.Requirements,
		IsActive:       job.IsActive,
		CreatedAt:      job.CreatedAt,
	}
}
