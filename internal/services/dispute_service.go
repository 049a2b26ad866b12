package services

import (
	"time"

	"refhub_backend/internal/appErrors"
	"refhub_backend/internal/auth"
	"refhub_backend/internal/models"
	"refhub_backend/internal/repositories"
	"refhub_backend/internal/services/dto"

	"gorm.io/gorm"
)

// DisputeService - админский обходной путь вокруг графа статусов.
// Открытие спора принудительно переводит реферал в disputed из любого
// нетерминального состояния; решение спора закрывает реферал навсегда.
type DisputeService interface {
	Open(db *gorm.DB, actor auth.Actor, referralID string, req *dto.OpenDisputeRequest) (*dto.DisputeResponse, error)
	Resolve(db *gorm.DB, actor auth.Actor, disputeID string, req *dto.ResolveDisputeRequest) (*dto.DisputeResponse, error)
	Get(db *gorm.DB, actor auth.Actor, id string) (*dto.DisputeResponse, error)
	ListOpen(db *gorm.DB, actor auth.Actor, limit, offset int) ([]dto.DisputeResponse, error)
}

type DisputeServiceImpl struct {
	disputeRepo  repositories.DisputeRepository
	referralRepo repositories.ReferralRepository
	jobRepo      repositories.JobRepository
	walletSvc    WalletService
	events       EventService
}

func NewDisputeService(
	disputeRepo repositories.DisputeRepository,
	referralRepo repositories.ReferralRepository,
	jobRepo repositories.JobRepository,
	walletSvc WalletService,
	events EventService,
) DisputeService {
	return &DisputeServiceImpl{
		disputeRepo:  disputeRepo,
		referralRepo: referralRepo,
		jobRepo:      jobRepo,
		walletSvc:    walletSvc,
		events:       events,
	}
}

// Open открывает спор от имени участника реферала.
func (s *DisputeServiceImpl) Open(db *gorm.DB, actor auth.Actor, referralID string, req *dto.OpenDisputeRequest) (*dto.DisputeResponse, error) {
	var dispute *models.Dispute

	err := db.Transaction(func(tx *gorm.DB) error {
		referral, err := s.referralRepo.FindByIDForUpdate(tx, referralID)
		if err != nil {
			if appErrors.Is(err, repositories.ErrReferralNotFound) {
				return appErrors.ErrReferralNotFound
			}
			return appErrors.DatabaseError(err)
		}

		// Спор открывают стороны реферала, не админ.
		party, ok := referral.PartyOf(actor.UserID, actor.Role)
		if !ok || party == models.PartyAdmin {
			return appErrors.ErrNotParticipant
		}

		if referral.Status == models.ReferralStatusDisputed {
			return appErrors.ErrDisputeAlreadyOpen
		}
		if referral.Status.IsTerminal() {
			return appErrors.ErrInvalidTransition.WithDetails(map[string]string{
				"from": string(referral.Status),
				"to":   string(models.ReferralStatusDisputed),
			})
		}

		dispute = &models.Dispute{
			ReferralRequestID: referral.ID,
			ClaimantID:        actor.UserID,
			Reason:            req.Reason,
			Evidence:          req.Evidence,
			Status:            models.DisputeStatusOpen,
		}
		if err := s.disputeRepo.Create(tx, dispute); err != nil {
			if appErrors.Is(err, repositories.ErrDisputeAlreadyExists) {
				return appErrors.ErrDisputeAlreadyOpen
			}
			return appErrors.DatabaseError(err)
		}

		// Принудительный перевод в disputed - документированное
		// исключение из графа переходов. payment_status не трогаем:
		// деньги двигает только резолюция.
		fromStatus := referral.Status
		if err := s.referralRepo.UpdateStatus(tx, referral.ID, models.ReferralStatusDisputed, referral.PaymentStatus); err != nil {
			return appErrors.DatabaseError(err)
		}
		referral.Status = models.ReferralStatusDisputed

		entry := &models.ReferralStatusHistory{
			ReferralRequestID: referral.ID,
			FromStatus:        fromStatus,
			ToStatus:          models.ReferralStatusDisputed,
			ActorID:           actor.UserID,
			Note:              req.Reason,
		}
		if err := s.referralRepo.AppendHistory(tx, entry); err != nil {
			return appErrors.DatabaseError(err)
		}

		if err := s.events.DisputeOpened(tx, dispute); err != nil {
			return appErrors.DatabaseError(err)
		}
		if err := s.events.ReferralStatusChanged(tx, referral, fromStatus, actor.UserID); err != nil {
			return appErrors.DatabaseError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return dto.NewDisputeResponse(dispute), nil
}

// Resolve закрывает спор. Требует админской capability у самого
// сервиса - внешнему middleware здесь не доверяем.
func (s *DisputeServiceImpl) Resolve(db *gorm.DB, actor auth.Actor, disputeID string, req *dto.ResolveDisputeRequest) (*dto.DisputeResponse, error) {
	if !actor.IsAdmin() {
		return nil, appErrors.ErrForbidden
	}

	var dispute *models.Dispute

	err := db.Transaction(func(tx *gorm.DB) error {
		// Lock на строке спора сериализует одновременные резолюции:
		// второй админ дочитывает уже закрытый спор, а не свой
		// устаревший снимок.
		var err error
		dispute, err = s.disputeRepo.FindByIDForUpdate(tx, disputeID)
		if err != nil {
			if appErrors.Is(err, repositories.ErrDisputeNotFound) {
				return appErrors.ErrDisputeNotFound
			}
			return appErrors.DatabaseError(err)
		}

		if dispute.Status != models.DisputeStatusOpen {
			return appErrors.ErrDisputeAlreadyResolved
		}

		referral, err := s.referralRepo.FindByIDForUpdate(tx, dispute.ReferralRequestID)
		if err != nil {
			return appErrors.DatabaseError(err)
		}

		job, err := s.jobRepo.FindByID(tx, referral.JobPostingID)
		if err != nil {
			return appErrors.DatabaseError(err)
		}

		fromStatus := referral.Status
		escrowHeld := referral.PaymentStatus == models.PaymentStatusEscrow

		var finalStatus models.ReferralStatus
		finalPayment := referral.PaymentStatus

		switch req.Outcome {
		case models.DisputeOutcomeFavorEmployee:
			finalStatus = models.ReferralStatusCompleted
			dispute.Status = models.DisputeStatusResolvedEmployee
		case models.DisputeOutcomeFavorSeeker:
			finalStatus = models.ReferralStatusNotSelected
			dispute.Status = models.DisputeStatusResolvedSeeker
		default:
			return appErrors.NewBadRequestError("unknown dispute outcome")
		}

		// CAS по статусу спора - первая запись транзакции: проигравшая
		// из двух одновременных резолюций откатывается, не успев
		// тронуть ни реферал, ни кошельки.
		now := time.Now()
		dispute.ResolvedByAdminID = &actor.UserID
		dispute.ResolvedAt = &now
		if err := s.disputeRepo.MarkResolved(tx, dispute); err != nil {
			if appErrors.Is(err, repositories.ErrDisputeNotOpen) {
				return appErrors.ErrDisputeAlreadyResolved
			}
			return appErrors.DatabaseError(err)
		}

		if escrowHeld {
			switch req.Outcome {
			case models.DisputeOutcomeFavorEmployee:
				// Выплата сотруднику, реферал завершен.
				if err := s.walletSvc.ReleaseEscrow(tx, referral, job); err != nil {
					return err
				}
				finalPayment = models.PaymentStatusReleased
			case models.DisputeOutcomeFavorSeeker:
				// Возврат соискателю, реферал закрыт без выплаты.
				if err := s.walletSvc.RefundEscrow(tx, referral, job); err != nil {
					return err
				}
				finalPayment = models.PaymentStatusRefunded
			}
		}

		if err := s.referralRepo.UpdateStatus(tx, referral.ID, finalStatus, finalPayment); err != nil {
			return appErrors.DatabaseError(err)
		}
		referral.Status = finalStatus
		referral.PaymentStatus = finalPayment

		entry := &models.ReferralStatusHistory{
			ReferralRequestID: referral.ID,
			FromStatus:        fromStatus,
			ToStatus:          finalStatus,
			ActorID:           actor.UserID,
			Note:              req.Note,
		}
		if err := s.referralRepo.AppendHistory(tx, entry); err != nil {
			return appErrors.DatabaseError(err)
		}

		if err := s.events.DisputeResolved(tx, dispute, req.Outcome); err != nil {
			return appErrors.DatabaseError(err)
		}
		if err := s.events.ReferralStatusChanged(tx, referral, fromStatus, actor.UserID); err != nil {
			return appErrors.DatabaseError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return dto.NewDisputeResponse(dispute), nil
}

func (s *DisputeServiceImpl) Get(db *gorm.DB, actor auth.Actor, id string) (*dto.DisputeResponse, error) {
	dispute, err := s.disputeRepo.FindByID(db, id)
	if err != nil {
		if appErrors.Is(err, repositories.ErrDisputeNotFound) {
			return nil, appErrors.ErrDisputeNotFound
		}
		return nil, appErrors.DatabaseError(err)
	}

	if !actor.IsAdmin() {
		referral, err := s.referralRepo.FindByID(db, dispute.ReferralRequestID)
		if err != nil {
			return nil, appErrors.DatabaseError(err)
		}
		if _, ok := referral.PartyOf(actor.UserID, actor.Role); !ok {
			return nil, appErrors.ErrForbidden
		}
	}

	return dto.NewDisputeResponse(dispute), nil
}

func (s *DisputeServiceImpl) ListOpen(db *gorm.DB, actor auth.Actor, limit, offset int) ([]dto.DisputeResponse, error) {
	if !actor.IsAdmin() {
		return nil, appErrors.ErrForbidden
	}

	disputes, err := s.disputeRepo.ListOpen(db, limit, offset)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	result := make([]dto.DisputeResponse, 0, len(disputes))
	for i := range disputes {
		result = append(result, *dto.NewDisputeResponse(&disputes[i]))
	}
	return result, nil
}
