package models

import "time"

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null"`
	Status       UserStatus `gorm:"type:varchar(30);default:'pending_verification'"`
	IsVerified   bool       `gorm:"default:false"`

	// Токены верификации и сброса пароля хранятся только в виде хеша.
	// Сами flow (отправка писем) живут вне этого сервиса, но колонки
	// должны быть здесь, чтобы их можно было подключить без миграций.
	VerificationTokenHash string
	ResetTokenHash        string
	ResetTokenExp         *time.Time

	// Relations
	Sessions  []Session         `gorm:"foreignKey:UserID"`
	Wallet    *Wallet           `gorm:"-"`
	Referrals []ReferralRequest `gorm:"foreignKey:JobSeekerID"`
}

// Session - активная сессия пользователя (refresh token).
// Сырой refresh token никогда не сохраняется: только HMAC-SHA256 хеш.
type Session struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	TokenHash string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	IP        string
	UserAgent string
}
