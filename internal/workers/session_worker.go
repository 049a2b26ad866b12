package workers

import (
	"context"
	"time"

	"refhub_backend/internal/logger"
	"refhub_backend/internal/repositories"

	"gorm.io/gorm"
)

// SessionWorker периодически удаляет протухшие сессии.
// Истекшая сессия и так отвергается при refresh, воркер лишь
// не дает таблице расти бесконечно.
type SessionWorker struct {
	db          *gorm.DB
	sessionRepo repositories.SessionRepository
	interval    time.Duration
}

func NewSessionWorker(db *gorm.DB, sessionRepo repositories.SessionRepository, interval time.Duration) *SessionWorker {
	return &SessionWorker{
		db:          db,
		sessionRepo: sessionRepo,
		interval:    interval,
	}
}

// Start запускает фоновую очистку сессий
func (w *SessionWorker) Start(ctx context.Context) {
	go w.cleanupLoop(ctx)
}

func (w *SessionWorker) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("session worker stopped")
			return
		case <-ticker.C:
			deleted, err := w.sessionRepo.DeleteExpired(w.db)
			if err != nil {
				logger.WorkerLog("session", "cleanup_expired", err)
				continue
			}
			if deleted > 0 {
				logger.Info("expired sessions removed", "count", deleted)
			}
		}
	}
}
