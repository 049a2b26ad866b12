package services

import (
	"refhub_backend/internal/appErrors"
	"refhub_backend/internal/models"
	"refhub_backend/internal/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletService - журнал движений по кошелькам.
// Каждая операция: pending-транзакция, перевод в completed и
// корректировка баланса - одна атомарная единица. Частичное
// применение (транзакция есть, баланс не тронут) невозможно:
// всё происходит внутри одной gorm-транзакции под row lock'ом.
type WalletService interface {
	EnsureWallet(db *gorm.DB, ownerID string, ownerType models.WalletOwnerType) (*models.Wallet, error)
	GetByOwner(db *gorm.DB, ownerID string, ownerType models.WalletOwnerType) (*models.Wallet, error)
	Credit(db *gorm.DB, walletID string, amount decimal.Decimal, txType models.TransactionType, referralID *string) (*models.Transaction, error)
	Debit(db *gorm.DB, walletID string, amount decimal.Decimal, txType models.TransactionType, referralID *string) (*models.Transaction, error)
	ListTransactions(db *gorm.DB, walletID string, limit, offset int) ([]models.Transaction, error)

	// Escrow-операции, вызываются машиной статусов и резолвером споров
	// внутри их транзакции - вместе со сменой статуса реферала.
	HoldEscrow(db *gorm.DB, referral *models.ReferralRequest, job *models.JobPosting) error
	ReleaseEscrow(db *gorm.DB, referral *models.ReferralRequest, job *models.JobPosting) error
	RefundEscrow(db *gorm.DB, referral *models.ReferralRequest, job *models.JobPosting) error
}

type WalletServiceImpl struct {
	walletRepo repositories.WalletRepository
	orgRepo    repositories.OrganizationRepository
	events     EventService

	currency   string
	feePercent decimal.Decimal
}

func NewWalletService(
	walletRepo repositories.WalletRepository,
	orgRepo repositories.OrganizationRepository,
	events EventService,
	currency string,
	feePercent float64,
) WalletService {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		orgRepo:    orgRepo,
		events:     events,
		currency:   currency,
		feePercent: decimal.NewFromFloat(feePercent),
	}
}

// EnsureWallet возвращает кошелек владельца, создавая при отсутствии.
// Ровно один кошелек на (owner_id, owner_type) - дубль закрыт
// уникальным индексом.
func (s *WalletServiceImpl) EnsureWallet(db *gorm.DB, ownerID string, ownerType models.WalletOwnerType) (*models.Wallet, error) {
	wallet, err := s.walletRepo.FindByOwner(db, ownerID, ownerType)
	if err == nil {
		return wallet, nil
	}
	if !appErrors.Is(err, repositories.ErrWalletNotFound) {
		return nil, appErrors.DatabaseError(err)
	}

	wallet = &models.Wallet{
		OwnerID:   ownerID,
		OwnerType: ownerType,
		Balance:   decimal.Zero,
		Currency:  s.currency,
	}
	if err := s.walletRepo.Create(db, wallet); err != nil {
		// Гонка двух EnsureWallet: проигравший Create перечитывает
		// кошелек победителя.
		if appErrors.Is(err, gorm.ErrDuplicatedKey) {
			wallet, err = s.walletRepo.FindByOwner(db, ownerID, ownerType)
			if err != nil {
				return nil, appErrors.DatabaseError(err)
			}
			return wallet, nil
		}
		return nil, appErrors.DatabaseError(err)
	}
	return wallet, nil
}

func (s *WalletServiceImpl) GetByOwner(db *gorm.DB, ownerID string, ownerType models.WalletOwnerType) (*models.Wallet, error) {
	wallet, err := s.walletRepo.FindByOwner(db, ownerID, ownerType)
	if err != nil {
		if appErrors.Is(err, repositories.ErrWalletNotFound) {
			return nil, appErrors.ErrWalletNotFound
		}
		return nil, appErrors.DatabaseError(err)
	}
	return wallet, nil
}

// Credit зачисляет amount (строго > 0) на кошелек.
func (s *WalletServiceImpl) Credit(db *gorm.DB, walletID string, amount decimal.Decimal, txType models.TransactionType, referralID *string) (*models.Transaction, error) {
	return s.apply(db, walletID, amount, txType, referralID)
}

// Debit списывает amount (строго > 0) с кошелька.
// Уход баланса ниже нуля - InsufficientFunds, баланс не меняется.
func (s *WalletServiceImpl) Debit(db *gorm.DB, walletID string, amount decimal.Decimal, txType models.TransactionType, referralID *string) (*models.Transaction, error) {
	return s.apply(db, walletID, amount.Neg(), txType, referralID)
}

// apply добавляет строку журнала и двигает баланс в одной транзакции.
// signedAmount: кредит > 0, дебет < 0.
func (s *WalletServiceImpl) apply(db *gorm.DB, walletID string, signedAmount decimal.Decimal, txType models.TransactionType, referralID *string) (*models.Transaction, error) {
	if signedAmount.IsZero() {
		return nil, appErrors.NewBadRequestError("amount must be non-zero")
	}

	var result *models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		wallet, err := s.walletRepo.FindByIDForUpdate(tx, walletID)
		if err != nil {
			if appErrors.Is(err, repositories.ErrWalletNotFound) {
				return appErrors.ErrWalletNotFound
			}
			return appErrors.DatabaseError(err)
		}

		newBalance := wallet.Balance.Add(signedAmount)
		if newBalance.IsNegative() {
			return appErrors.ErrInsufficientFunds
		}

		entry := &models.Transaction{
			WalletID:          wallet.ID,
			ReferralRequestID: referralID,
			Amount:            signedAmount,
			Type:              txType,
			Status:            models.TransactionStatusPending,
		}
		if err := s.walletRepo.CreateTransaction(tx, entry); err != nil {
			return appErrors.DatabaseError(err)
		}

		if err := s.walletRepo.UpdateTransactionStatus(tx, entry.ID, models.TransactionStatusCompleted); err != nil {
			return appErrors.DatabaseError(err)
		}
		entry.Status = models.TransactionStatusCompleted

		if err := s.walletRepo.UpdateBalance(tx, wallet.ID, newBalance); err != nil {
			return appErrors.DatabaseError(err)
		}

		if err := s.events.TransactionCompleted(tx, entry); err != nil {
			return appErrors.DatabaseError(err)
		}

		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *WalletServiceImpl) ListTransactions(db *gorm.DB, walletID string, limit, offset int) ([]models.Transaction, error) {
	txs, err := s.walletRepo.ListTransactions(db, walletID, limit, offset)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	return txs, nil
}

// HoldEscrow переводит referral_fee из кошелька соискателя в escrow.
func (s *WalletServiceImpl) HoldEscrow(db *gorm.DB, referral *models.ReferralRequest, job *models.JobPosting) error {
	if job.Currency != s.currency {
		return appErrors.ErrCurrencyMismatch
	}

	seekerWallet, err := s.EnsureWallet(db, referral.JobSeekerID, models.WalletOwnerUser)
	if err != nil {
		return err
	}
	escrowWallet, err := s.platformWallet(db, models.EscrowOrgName)
	if err != nil {
		return err
	}

	if _, err := s.Debit(db, seekerWallet.ID, job.ReferralFee, models.TransactionTypeEscrowHold, &referral.ID); err != nil {
		return err
	}
	if _, err := s.Credit(db, escrowWallet.ID, job.ReferralFee, models.TransactionTypeEscrowHold, &referral.ID); err != nil {
		return err
	}
	return nil
}

// ReleaseEscrow выплачивает удержанную сумму сотруднику за вычетом
// комиссии платформы; комиссия уходит на кошелек платформы.
func (s *WalletServiceImpl) ReleaseEscrow(db *gorm.DB, referral *models.ReferralRequest, job *models.JobPosting) error {
	escrowWallet, err := s.platformWallet(db, models.EscrowOrgName)
	if err != nil {
		return err
	}
	revenueWallet, err := s.platformWallet(db, models.PlatformOrgName)
	if err != nil {
		return err
	}
	employeeWallet, err := s.EnsureWallet(db, referral.EmployeeID, models.WalletOwnerUser)
	if err != nil {
		return err
	}

	fee := job.ReferralFee.Mul(s.feePercent).Div(decimal.NewFromInt(100)).Round(4)
	payout := job.ReferralFee.Sub(fee)

	if _, err := s.Debit(db, escrowWallet.ID, job.ReferralFee, models.TransactionTypeEscrowRelease, &referral.ID); err != nil {
		return err
	}
	if _, err := s.Credit(db, employeeWallet.ID, payout, models.TransactionTypeEscrowRelease, &referral.ID); err != nil {
		return err
	}
	if fee.IsPositive() {
		if _, err := s.Credit(db, revenueWallet.ID, fee, models.TransactionTypePlatformFee, &referral.ID); err != nil {
			return err
		}
	}
	return nil
}

// RefundEscrow возвращает удержанную сумму соискателю целиком.
func (s *WalletServiceImpl) RefundEscrow(db *gorm.DB, referral *models.ReferralRequest, job *models.JobPosting) error {
	escrowWallet, err := s.platformWallet(db, models.EscrowOrgName)
	if err != nil {
		return err
	}
	seekerWallet, err := s.EnsureWallet(db, referral.JobSeekerID, models.WalletOwnerUser)
	if err != nil {
		return err
	}

	if _, err := s.Debit(db, escrowWallet.ID, job.ReferralFee, models.TransactionTypeEscrowRefund, &referral.ID); err != nil {
		return err
	}
	if _, err := s.Credit(db, seekerWallet.ID, job.ReferralFee, models.TransactionTypeEscrowRefund, &referral.ID); err != nil {
		return err
	}
	return nil
}

func (s *WalletServiceImpl) platformWallet(db *gorm.DB, orgName string) (*models.Wallet, error) {
	org, err := s.orgRepo.FindByName(db, orgName)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	return s.EnsureWallet(db, org.ID, models.WalletOwnerOrganization)
}
