package services

import (
	"refhub_backend/internal/appErrors"
	"refhub_backend/internal/auth"
	"refhub_backend/internal/models"
	"refhub_backend/internal/repositories"
	"refhub_backend/internal/services/dto"

	"gorm.io/gorm"
)

// ReferralService - машина статусов реферала.
// Каждый принятый переход атомарно: меняет status/payment_status,
// дописывает ровно одну строку истории и, если переход двигает деньги,
// выполняет escrow-операцию - всё в одной транзакции под row lock'ом.
// Конкурирующий переход увидит уже измененный статус и получит
// InvalidTransition без каких-либо следов в истории.
type ReferralService interface {
	Create(db *gorm.DB, actor auth.Actor, req *dto.CreateReferralRequest) (*dto.ReferralResponse, error)
	Get(db *gorm.DB, actor auth.Actor, id string) (*dto.ReferralResponse, error)
	Transition(db *gorm.DB, actor auth.Actor, id string, target models.ReferralStatus, note string) (*dto.ReferralResponse, error)
	History(db *gorm.DB, actor auth.Actor, id string) ([]dto.HistoryEntry, error)
	ListMine(db *gorm.DB, actor auth.Actor) ([]dto.ReferralResponse, error)
}

type ReferralServiceImpl struct {
	referralRepo repositories.ReferralRepository
	jobRepo      repositories.JobRepository
	userRepo     repositories.UserRepository
	walletSvc    WalletService
	events       EventService
}

func NewReferralService(
	referralRepo repositories.ReferralRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	walletSvc WalletService,
	events EventService,
) ReferralService {
	return &ReferralServiceImpl{
		referralRepo: referralRepo,
		jobRepo:      jobRepo,
		userRepo:     userRepo,
		walletSvc:    walletSvc,
		events:       events,
	}
}

// Create - соискатель запрашивает реферал у сотрудника по вакансии.
func (s *ReferralServiceImpl) Create(db *gorm.DB, actor auth.Actor, req *dto.CreateReferralRequest) (*dto.ReferralResponse, error) {
	if actor.Role != models.UserRoleJobSeeker {
		return nil, appErrors.ErrForbidden
	}

	job, err := s.jobRepo.FindByID(db, req.JobPostingID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrJobNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, appErrors.DatabaseError(err)
	}
	if !job.IsActive {
		return nil, appErrors.ErrJobNotActive
	}

	employee, err := s.userRepo.FindByID(db, req.EmployeeID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.DatabaseError(err)
	}
	if employee.Role != models.UserRoleEmployee {
		return nil, appErrors.NewBadRequestError("referral target must be an employee")
	}

	referral := &models.ReferralRequest{
		JobPostingID:  job.ID,
		JobSeekerID:   actor.UserID,
		EmployeeID:    employee.ID,
		Status:        models.ReferralStatusPendingAcceptance,
		PaymentStatus: models.PaymentStatusPending,
		ResumeURL:     req.ResumeURL,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.referralRepo.Create(tx, referral); err != nil {
			return appErrors.DatabaseError(err)
		}

		// Начальный статус тоже попадает в историю: журнал обязан
		// покрывать каждый статус, который реферал когда-либо имел.
		entry := &models.ReferralStatusHistory{
			ReferralRequestID: referral.ID,
			ToStatus:          models.ReferralStatusPendingAcceptance,
			ActorID:           actor.UserID,
		}
		if err := s.referralRepo.AppendHistory(tx, entry); err != nil {
			return appErrors.DatabaseError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return dto.NewReferralResponse(referral), nil
}

func (s *ReferralServiceImpl) Get(db *gorm.DB, actor auth.Actor, id string) (*dto.ReferralResponse, error) {
	referral, err := s.findVisible(db, actor, id)
	if err != nil {
		return nil, err
	}
	return dto.NewReferralResponse(referral), nil
}

// Transition выполняет переход статуса по графу.
func (s *ReferralServiceImpl) Transition(db *gorm.DB, actor auth.Actor, id string, target models.ReferralStatus, note string) (*dto.ReferralResponse, error) {
	var updated *models.ReferralRequest

	err := db.Transaction(func(tx *gorm.DB) error {
		referral, err := s.referralRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			if appErrors.Is(err, repositories.ErrReferralNotFound) {
				return appErrors.ErrReferralNotFound
			}
			return appErrors.DatabaseError(err)
		}

		party, isParticipant := referral.PartyOf(actor.UserID, actor.Role)
		if !isParticipant {
			return appErrors.ErrNotParticipant
		}

		edge, ok := models.FindTransition(referral.Status, target)
		if !ok {
			return appErrors.ErrInvalidTransition.WithDetails(map[string]string{
				"from": string(referral.Status),
				"to":   string(target),
			})
		}

		if !edge.Allows(party) {
			return appErrors.ErrForbidden
		}

		if edge.RequirePayment != "" && referral.PaymentStatus != edge.RequirePayment {
			return appErrors.ErrInvalidTransition.WithDetails(map[string]string{
				"payment_status": string(referral.PaymentStatus),
			})
		}

		job, err := s.jobRepo.FindByID(tx, referral.JobPostingID)
		if err != nil {
			return appErrors.DatabaseError(err)
		}

		// Escrow-операция в той же транзакции, что и смена статуса:
		// либо применяется всё, либо ничего.
		switch edge.Effect {
		case models.EscrowHold:
			if err := s.walletSvc.HoldEscrow(tx, referral, job); err != nil {
				return err
			}
		case models.EscrowRelease:
			if err := s.walletSvc.ReleaseEscrow(tx, referral, job); err != nil {
				return err
			}
		case models.EscrowRefund:
			if err := s.walletSvc.RefundEscrow(tx, referral, job); err != nil {
				return err
			}
		}

		fromStatus := referral.Status
		newPayment := referral.PaymentStatus
		if edge.PaymentTo != "" {
			newPayment = edge.PaymentTo
		}

		if err := s.referralRepo.UpdateStatus(tx, referral.ID, target, newPayment); err != nil {
			return appErrors.DatabaseError(err)
		}
		referral.Status = target
		referral.PaymentStatus = newPayment

		entry := &models.ReferralStatusHistory{
			ReferralRequestID: referral.ID,
			FromStatus:        fromStatus,
			ToStatus:          target,
			ActorID:           actor.UserID,
			Note:              note,
		}
		if err := s.referralRepo.AppendHistory(tx, entry); err != nil {
			return appErrors.DatabaseError(err)
		}

		if err := s.events.ReferralStatusChanged(tx, referral, fromStatus, actor.UserID); err != nil {
			return appErrors.DatabaseError(err)
		}

		updated = referral
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dto.NewReferralResponse(updated), nil
}

// History возвращает журнал статусов в хронологическом порядке.
func (s *ReferralServiceImpl) History(db *gorm.DB, actor auth.Actor, id string) ([]dto.HistoryEntry, error) {
	if _, err := s.findVisible(db, actor, id); err != nil {
		return nil, err
	}

	entries, err := s.referralRepo.HistoryByReferralID(db, id)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	result := make([]dto.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, dto.HistoryEntry{
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			ActorID:    e.ActorID,
			Note:       e.Note,
			CreatedAt:  e.CreatedAt,
		})
	}
	return result, nil
}

func (s *ReferralServiceImpl) ListMine(db *gorm.DB, actor auth.Actor) ([]dto.ReferralResponse, error) {
	referrals, err := s.referralRepo.ListByParticipant(db, actor.UserID)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	result := make([]dto.ReferralResponse, 0, len(referrals))
	for i := range referrals {
		result = append(result, *dto.NewReferralResponse(&referrals[i]))
	}
	return result, nil
}

// findVisible находит реферал и проверяет, что актор - участник или админ.
func (s *ReferralServiceImpl) findVisible(db *gorm.DB, actor auth.Actor, id string) (*models.ReferralRequest, error) {
	referral, err := s.referralRepo.FindByID(db, id)
	if err != nil {
		if appErrors.Is(err, repositories.ErrReferralNotFound) {
			return nil, appErrors.ErrReferralNotFound
		}
		return nil, appErrors.DatabaseError(err)
	}

	if _, ok := referral.PartyOf(actor.UserID, actor.Role); !ok {
		return nil, appErrors.ErrNotParticipant
	}
	return referral, nil
}
