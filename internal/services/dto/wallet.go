package dto

import (
	"time"

	"refhub_backend/internal/models"
)

// WalletResponse - кошелек в ответе API.
// Баланс строкой, чтобы клиенты не теряли точность на float.
type WalletResponse struct {
	ID        string                 `json:"id"`
	OwnerID   string                 `json:"owner_id"`
	OwnerType models.WalletOwnerType `json:"owner_type"`
	Balance   string                 `json:"balance"`
	Currency  string                 `json:"currency"`
}

// TransactionResponse - строка журнала транзакций
type TransactionResponse struct {
	ID                string                   `json:"id"`
	WalletID          string                   `json:"wallet_id"`
	ReferralRequestID *string                  `json:"referral_request_id,omitempty"`
	Amount            string                   `json:"amount"`
	Type              models.TransactionType   `json:"type"`
	Status            models.TransactionStatus `json:"status"`
	CreatedAt         time.Time                `json:"created_at"`
}

func NewWalletResponse(w *models.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:        w.ID,
		OwnerID:   w.OwnerID,
		OwnerType: w.OwnerType,
		Balance:   w.Balance.StringFixed(4),
		Currency:  w.Currency,
	}
}

func NewTransactionResponse(t *models.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                t.ID,
		WalletID:          t.WalletID,
		ReferralRequestID: t.ReferralRequestID,
		Amount:            t.Amount.StringFixed(4),
		Type:              t.Type,
		Status:            t.Status,
		CreatedAt:         t.CreatedAt,
	}
}
