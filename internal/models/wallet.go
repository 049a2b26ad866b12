package models

import "github.com/shopspring/decimal"

// Wallet - кошелек пользователя или организации.
// Balance - кешированное значение: в любой момент оно равно сумме
// завершенных транзакций кошелька (сверяется LedgerWorker'ом).
type Wallet struct {
	BaseModel
	OwnerID   string          `gorm:"not null;uniqueIndex:idx_wallet_owner"`
	OwnerType WalletOwnerType `gorm:"type:varchar(20);not null;uniqueIndex:idx_wallet_owner"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	Currency  string          `gorm:"type:varchar(3);not null"`

	Transactions []Transaction `gorm:"foreignKey:WalletID"`
}

// Transaction - строка append-only журнала движений по кошельку.
// Amount со знаком: кредит > 0, дебет < 0. Завершенная транзакция
// неизменяема, корректировки - только встречными транзакциями.
type Transaction struct {
	BaseModel
	WalletID          string            `gorm:"not null;index"`
	ReferralRequestID *string           `gorm:"index"`
	Amount            decimal.Decimal   `gorm:"type:numeric(20,4);not null"`
	Type              TransactionType   `gorm:"type:varchar(30);not null;index"`
	Status            TransactionStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}
