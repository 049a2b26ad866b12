package repositories

import (
	"errors"

	"refhub_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

type WalletRepository interface {
	Create(db *gorm.DB, wallet *models.Wallet) error
	FindByID(db *gorm.DB, id string) (*models.Wallet, error)
	FindByOwner(db *gorm.DB, ownerID string, ownerType models.WalletOwnerType) (*models.Wallet, error)

	// FindByIDForUpdate берет кошелек под SELECT ... FOR UPDATE,
	// чтобы конкурирующие credit/debit не теряли обновления баланса.
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Wallet, error)

	UpdateBalance(db *gorm.DB, id string, balance decimal.Decimal) error
	ListAll(db *gorm.DB) ([]models.Wallet, error)

	CreateTransaction(db *gorm.DB, tx *models.Transaction) error
	UpdateTransactionStatus(db *gorm.DB, id string, status models.TransactionStatus) error
	ListTransactions(db *gorm.DB, walletID string, limit, offset int) ([]models.Transaction, error)

	// SumCompleted считает сумму завершенных транзакций кошелька -
	// эталон, которому обязан равняться Balance.
	SumCompleted(db *gorm.DB, walletID string) (decimal.Decimal, error)
}

type walletRepository struct{}

func NewWalletRepository() WalletRepository {
	return &walletRepository{}
}

func (r *walletRepository) Create(db *gorm.DB, wallet *models.Wallet) error {
	return db.Create(wallet).Error
}

func (r *walletRepository) FindByID(db *gorm.DB, id string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := db.First(&wallet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) FindByOwner(db *gorm.DB, ownerID string, ownerType models.WalletOwnerType) (*models.Wallet, error) {
	var wallet models.Wallet
	err := db.Where("owner_id = ? AND owner_type = ?", ownerID, ownerType).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) FindByIDForUpdate(db *gorm.DB, id string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&wallet, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) UpdateBalance(db *gorm.DB, id string, balance decimal.Decimal) error {
	result := db.Model(&models.Wallet{}).Where("id = ?", id).Update("balance", balance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}

func (r *walletRepository) ListAll(db *gorm.DB) ([]models.Wallet, error) {
	var wallets []models.Wallet
	err := db.Find(&wallets).Error
	return wallets, err
}

func (r *walletRepository) CreateTransaction(db *gorm.DB, tx *models.Transaction) error {
	return db.Create(tx).Error
}

func (r *walletRepository) UpdateTransactionStatus(db *gorm.DB, id string, status models.TransactionStatus) error {
	// Завершенные транзакции неизменяемы: статус меняется только из pending.
	result := db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, models.TransactionStatusPending).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *walletRepository) ListTransactions(db *gorm.DB, walletID string, limit, offset int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := db.Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&txs).Error
	return txs, err
}

func (r *walletRepository) SumCompleted(db *gorm.DB, walletID string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("wallet_id = ? AND status = ?", walletID, models.TransactionStatusCompleted).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
