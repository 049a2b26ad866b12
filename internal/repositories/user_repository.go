package repositories

import (
	"errors"

	"refhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository определяет операции над пользователями.
// *gorm.DB передается в каждый вызов явно: это может быть пул
// или открытая транзакция.
type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByVerificationTokenHash(db *gorm.DB, tokenHash string) (*models.User, error)
	Update(db *gorm.DB, user *models.User) error
	UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error
	VerifyUser(db *gorm.DB, userID string) error
	FindByRole(db *gorm.DB, role models.UserRole, limit, offset int) ([]models.User, error)
	CountAll(db *gorm.DB) (int64, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

// Create создает пользователя. Гонку двух одновременных регистраций
// закрывает uniqueIndex на email: дубликат превращается в
// ErrUserAlreadyExists, а не в "голую" ошибку БД.
func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByVerificationTokenHash находит пользователя по хешу токена
// верификации. VerifyUser стирает хеш, так что повторное применение
// того же токена дает ErrUserNotFound.
func (r *userRepository) FindByVerificationTokenHash(db *gorm.DB, tokenHash string) (*models.User, error) {
	var user models.User
	if err := db.Where("verification_token_hash = ? AND verification_token_hash <> ''", tokenHash).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

func (r *userRepository) UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) VerifyUser(db *gorm.DB, userID string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_verified":             true,
		"status":                  models.UserStatusActive,
		"verification_token_hash": "",
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) FindByRole(db *gorm.DB, role models.UserRole, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := db.Where("role = ?", role).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *userRepository) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Count(&count).Error
	return count, err
}
