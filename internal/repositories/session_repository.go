package repositories

import (
	"errors"
	"time"

	"refhub_backend/internal/logger"
	"refhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrSessionNotFound - сессии с таким хешем токена нет
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired - сессия есть, но срок действия истек.
	// Оба отказывают вызывающему, но это разные причины.
	ErrSessionExpired = errors.New("session expired")
)

// SessionRepository определяет операции над сессиями (refresh-токенами).
// Хранится только хеш токена, сервис хеширует сырое значение до вызова.
type SessionRepository interface {
	Create(db *gorm.DB, session *models.Session) error
	FindByTokenHash(db *gorm.DB, tokenHash string) (*models.Session, error)
	DeleteByTokenHash(db *gorm.DB, tokenHash string) error
	DeleteByUserID(db *gorm.DB, userID string) error
	DeleteExpired(db *gorm.DB) (int64, error)
	CountByUserID(db *gorm.DB, userID string) (int64, error)
}

type sessionRepository struct{}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(db *gorm.DB, session *models.Session) error {
	return db.Create(session).Error
}

// FindByTokenHash находит сессию по хешу токена.
// Истекшая сессия - отдельная ошибка: она попутно удаляется.
func (r *sessionRepository) FindByTokenHash(db *gorm.DB, tokenHash string) (*models.Session, error) {
	var session models.Session
	if err := db.Where("token_hash = ?", tokenHash).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		// Сессия все равно истекла: неудачная зачистка не меняет
		// ответ, но и молчать о ней нельзя - строку подберет janitor.
		if delErr := db.Where("token_hash = ?", tokenHash).Delete(&models.Session{}).Error; delErr != nil {
			logger.Warn("failed to delete expired session", "error", delErr)
		}
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// DeleteByTokenHash удаляет сессию. Идемпотентна: удаление
// несуществующей сессии - не ошибка.
func (r *sessionRepository) DeleteByTokenHash(db *gorm.DB, tokenHash string) error {
	return db.Where("token_hash = ?", tokenHash).Delete(&models.Session{}).Error
}

func (r *sessionRepository) DeleteByUserID(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

// DeleteExpired удаляет все истекшие сессии, возвращает число удаленных
func (r *sessionRepository) DeleteExpired(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

func (r *sessionRepository) CountByUserID(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Session{}).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Count(&count).Error
	return count, err
}
