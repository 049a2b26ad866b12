package workers

import (
	"context"
	"time"

	"refhub_backend/internal/logger"
	"refhub_backend/internal/repositories"

	"gorm.io/gorm"
)

// LedgerWorker сверяет баланс каждого кошелька с суммой его
// завершенных транзакций. Расхождение означает баг или ручное
// вмешательство в данные; воркер только логирует и никогда
// не правит баланс сам.
type LedgerWorker struct {
	db         *gorm.DB
	walletRepo repositories.WalletRepository
	interval   time.Duration
}

func NewLedgerWorker(db *gorm.DB, walletRepo repositories.WalletRepository, interval time.Duration) *LedgerWorker {
	return &LedgerWorker{
		db:         db,
		walletRepo: walletRepo,
		interval:   interval,
	}
}

// Start запускает периодическую сверку
func (w *LedgerWorker) Start(ctx context.Context) {
	go w.reconcileLoop(ctx)
}

func (w *LedgerWorker) reconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("ledger worker stopped")
			return
		case <-ticker.C:
			w.reconcile()
		}
	}
}

func (w *LedgerWorker) reconcile() {
	wallets, err := w.walletRepo.ListAll(w.db)
	if err != nil {
		logger.WorkerLog("ledger", "list_wallets", err)
		return
	}

	drifted := 0
	for i := range wallets {
		wallet := &wallets[i]

		sum, err := w.walletRepo.SumCompleted(w.db, wallet.ID)
		if err != nil {
			logger.WorkerLog("ledger", "sum_transactions", err)
			continue
		}

		if !wallet.Balance.Equal(sum) {
			drifted++
			logger.Error("wallet balance drift detected",
				"wallet_id", wallet.ID,
				"balance", wallet.Balance.StringFixed(4),
				"ledger_sum", sum.StringFixed(4),
			)
		}
	}

	if drifted == 0 {
		logger.Info("ledger reconcile complete", "wallets", len(wallets))
	}
}
