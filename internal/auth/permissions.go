package auth

import (
	"errors"

	"refhub_backend/internal/models"
)

// Actor - кто выполняет операцию ядра. Собирается из проверенных
// claims access token'а и передается в сервисы явно: сервисы сами
// проверяют права, не доверяя только внешнему middleware.
type Actor struct {
	UserID string
	Role   models.UserRole
}

// IsAdmin проверяет административную capability
func (a Actor) IsAdmin() bool {
	return a.Role == models.UserRoleAdmin
}

// ActorFromClaims собирает Actor из claims access token'а
func ActorFromClaims(claims *Claims) Actor {
	return Actor{
		UserID: claims.UserID,
		Role:   models.UserRole(claims.Role),
	}
}

// ValidateRole проверяет валидность роли при регистрации.
// Админов через публичную регистрацию не создают.
func ValidateRole(role models.UserRole) error {
	switch role {
	case models.UserRoleJobSeeker, models.UserRoleEmployee:
		return nil
	default:
		return errors.New("invalid role")
	}
}
